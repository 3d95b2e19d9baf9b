// 29 Apr 2020

package common

import (
	"fmt"
	"io"
	"log"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}

// LogWhere decides where to send logged output.
// "" means throw it away, "stdout" is standard output and anything
// else is a file name which we append to. Call the returned function
// when finished with the logger. It closes the file, if there is one.
func LogWhere(outinfo string) (*log.Logger, func() error, error) {
	noop := func() error { return nil }
	switch outinfo {
	case "":
		return log.New(io.Discard, "", log.Lshortfile), noop, nil
	case "stdout":
		return log.New(os.Stdout, "", log.Lshortfile), noop, nil
	}
	fp, err := os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file %s: %w", outinfo, err)
	}
	return log.New(fp, "", log.Lshortfile), fp.Close, nil
}
