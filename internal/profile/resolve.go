package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Resolve reads a profile document from a file path, stdin ("-"), or an
// interactive paste when input is empty, and parses it. label prefixes
// error messages and prompts when resolving one of several inputs
// ("old ", "new ").
func Resolve(input string, label string) (Document, error) {
	data, err := readInput(input, label)
	if err != nil {
		return Document{}, err
	}

	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "{") {
		return Document{}, fmt.Errorf("unable to detect %sinput type: expected a query profile JSON document", label)
	}

	return Parse(data)
}

func readInput(input string, label string) ([]byte, error) {
	switch input {
	case "":
		return readInteractive(label)
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(input)
	}
}

func readInteractive(label string) ([]byte, error) {
	fmt.Printf("Paste %squery profile JSON", label)
	if runtime.GOOS == "windows" {
		fmt.Print(" (Ctrl+Z, Enter to submit)\n")
	} else {
		fmt.Print(" (Ctrl+D to submit)\n")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))

	if strings.HasPrefix(trimmed, "{") && !json.Valid(data) {
		return nil, fmt.Errorf("input appears truncated; for large profiles use: dremprof analyze <file>")
	}

	return data, nil
}
