package main

import (
	"context"
	"os"

	"github.com/reuben-baek/go-structs/config"
	"github.com/reuben-baek/go-structs/demo"
	"github.com/reuben-baek/go-structs/heap"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cfg, err := config.Parse()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	level, _ := cfg.Level()
	logrus.SetLevel(level)

	h, err := heap.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open allocation ledger")
	}

	runner := &demo.Runner{
		Out:     os.Stdout,
		In:      os.Stdin,
		Heap:    h,
		Partial: cfg.PartialArray,
	}
	if err := runner.Run(context.Background()); err != nil {
		logrus.WithError(err).Fatal("demo failed")
	}
}
