// Package logger provides structured logging for the Aspen SDK and its
// tools, built on zerolog.
//
// The SDK never logs unless a logger is supplied; aspenctl configures one
// from its config file:
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "aspenctl")
//	client, err := aspen.New(cfg, aspen.WithLogger(log))
//
// Field helpers keep keys consistent across packages:
//
//	log.Info("request sent", logger.Fields(logger.FieldRoute, "users/pin", logger.FieldStatus, 200))
package logger
