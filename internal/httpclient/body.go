package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"strings"
)

// encodeBody turns a resolved payload into a reader plus the content type
// it implies (empty when the payload dictates none). Multipart file fields
// that cannot be opened are logged and skipped; they never abort the build.
func (c *Client) encodeBody(payload BodyPayload) (io.Reader, string, error) {
	switch {
	case payload.JSON != nil:
		data, err := json.Marshal(payload.JSON)
		if err != nil {
			// the value came from a successful parse, so this is unreachable
			// in practice; degrade to the substituted text like invalid JSON
			return strings.NewReader(payload.Raw), "", nil
		}
		return bytes.NewReader(data), mimeJSON, nil
	case payload.Form != nil:
		values := url.Values{}
		for key, value := range payload.Form {
			values.Set(key, value)
		}
		return strings.NewReader(values.Encode()), mimeFormURLEncoded, nil
	case payload.MultipartText != nil || payload.MultipartFiles != nil:
		return c.encodeMultipart(payload)
	case payload.Raw != "":
		return strings.NewReader(payload.Raw), "", nil
	default:
		return nil, "", nil
	}
}

func (c *Client) encodeMultipart(payload BodyPayload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range payload.MultipartText {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	for key, path := range payload.MultipartFiles {
		if err := c.writeFilePart(writer, key, path); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

// writeFilePart copies one file into the multipart body. The handle is
// closed on every exit path; an unreadable file is skipped with a warning.
func (c *Client) writeFilePart(writer *multipart.Writer, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		c.logger.Printf("could not open multipart file %s: %v", path, err)
		return nil
	}
	defer f.Close()

	part, err := writer.CreateFormFile(key, baseName(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func baseName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
