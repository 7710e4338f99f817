// Package logger provides adapters for popular logger libraries to work with memdex's Logger interface.
//
// The adapters allow you to use your existing logger with memdex without writing boilerplate.
// Note that the standard library's slog.Logger already implements memdex.Logger directly.
//
// Example with zap:
//
//	import (
//	    "go.uber.org/zap"
//
//	    "memdex"
//	    "memdex/logger"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//
//	    tree, err := memdex.New(memdex.WithLogger(logger.NewZap(zapLogger)))
//	    if err != nil {
//	        panic(err)
//	    }
//	    defer tree.Close()
//	}
package logger
