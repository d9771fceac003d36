package main

import (
	"github.com/rs/zerolog"
	"github.com/tansive/firebase/internal/cli"
	"github.com/tansive/firebase/internal/common/logtrace"
)

func init() {
	logtrace.InitLogger(zerolog.InfoLevel)
}

func main() {
	cli.Execute()
}
