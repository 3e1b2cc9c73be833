package vars

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/unkn0wn-root/curlmonkey/internal/errdef"
)

// LoadDotEnv reads KEY=value pairs from a dotenv-style file, for importing
// into an environment. Comment lines and blanks are skipped, an optional
// "export " prefix is ignored, and single or double quoted values have one
// layer of quotes removed. Later keys overwrite earlier ones.
func LoadDotEnv(path string) (vals map[string]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "open env file %s", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errdef.Wrap(errdef.CodeFilesystem, closeErr, "close env file %s", path)
		}
	}()

	vals, err = parseDotEnv(f)
	return vals, err
}

func parseDotEnv(r io.Reader) (map[string]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = unquoteDotEnv(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "read env file")
	}
	return values, nil
}

func unquoteDotEnv(value string) string {
	if len(value) < 2 {
		return value
	}
	first := value[0]
	last := value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
