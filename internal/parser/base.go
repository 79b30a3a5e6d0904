// Package parser provides the base parser functionality shared by the
// extractor implementations.
package parser

import (
	"tradevault/trade-import/internal/logging"
)

// BaseParser provides common functionality for extractor implementations.
// Extractors embed it to inherit logger handling:
//
//	type Adapter struct {
//		parser.BaseParser
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser with the provided logger.
// If logger is nil, the process-wide default logger is used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{logger: logger}
}

// SetLogger replaces the parser's logger. Passing nil is a no-op.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}
