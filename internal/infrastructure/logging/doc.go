// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: sampled JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Features:
//   - Service name attached to every entry
//   - Runtime level changes through SetLevel
//   - Named child loggers per component
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "debug", Development: true})
//	if err != nil {
//		return err
//	}
//	defer logger.Sync()
//	logger.Component("hub").Info("desktop created", zap.String("desktop_id", id))
package logging
