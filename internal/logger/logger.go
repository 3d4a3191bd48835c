package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

var (
	once        sync.Once
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
)

// Init is called once at startup; library code that logs before main wires
// things up (or from tests) gets the same loggers lazily.
func Init() {
	once.Do(func() {
		infoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
		errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
		debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	})
}

func Info(msg string) {
	Init()
	infoLogger.Output(2, msg)
}

func Infof(format string, v ...interface{}) {
	Init()
	infoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(msg string) {
	Init()
	errorLogger.Output(2, msg)
}

func Errorf(format string, v ...interface{}) {
	Init()
	errorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(msg string) {
	Init()
	debugLogger.Output(2, msg)
}

func Debugf(format string, v ...interface{}) {
	Init()
	debugLogger.Output(2, fmt.Sprintf(format, v...))
}

func Fatal(msg string) {
	Init()
	errorLogger.Output(2, msg)
	os.Exit(1)
}

func Fatalf(format string, v ...interface{}) {
	Init()
	errorLogger.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}
