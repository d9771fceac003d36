package firebase

import (
	"fmt"
	"net/url"
	"strconv"
)

// AuthKey is the query parameter that carries the auth token.
const AuthKey = "auth"

// Query holds the query options of a request, e.g. {"orderBy": `"$key"`,
// "limitToFirst": 10, "shallow": true}. Values must be strings, booleans,
// integers, floats or fmt.Stringers.
type Query map[string]any

// Merge returns a new Query with the entries of other laid over q. Keys
// present in both take the value from other.
func (q Query) Merge(other Query) Query {
	merged := make(Query, len(q)+len(other))
	for k, v := range q {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Values encodes the query. It fails with ErrInvalidQuery when a value is not
// a scalar.
func (q Query) Values() (url.Values, error) {
	values := make(url.Values, len(q))
	for k, v := range q {
		s, err := formatQueryValue(v)
		if err != nil {
			return nil, ErrInvalidQuery.MsgErr(fmt.Sprintf("unsupported value for query option %q", k), err)
		}
		values.Set(k, s)
	}
	return values, nil
}

func formatQueryValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.FormatInt(int64(t), 10), nil
	case int8:
		return strconv.FormatInt(int64(t), 10), nil
	case int16:
		return strconv.FormatInt(int64(t), 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("%T", v)
	}
}
