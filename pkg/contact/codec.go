package contact

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record keys, in the order they are written.
const (
	KeyFirstName = "Nome"
	KeyLastName  = "Cognome"
	KeyAddress   = "Indirizzo"
	KeyPhone     = "Telefono"
	KeyAge       = "Eta"
)

// Encode renders c as a record block of exactly five "Key: Value" lines.
//
// Values are written verbatim. A value containing a line break produces a
// block that cannot be decoded back; Validate rejects such contacts.
func Encode(c Contact) []byte {
	var sb strings.Builder
	writeLine(&sb, KeyFirstName, c.FirstName)
	writeLine(&sb, KeyLastName, c.LastName)
	writeLine(&sb, KeyAddress, c.Address)
	writeLine(&sb, KeyPhone, c.Phone)
	writeLine(&sb, KeyAge, strconv.Itoa(c.Age))
	return []byte(sb.String())
}

func writeLine(sb *strings.Builder, key, value string) {
	sb.WriteString(key)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteByte('\n')
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	onAgeError func(value string, err error)
}

// WithAgeErrorHandler registers fn to be called when the age field cannot be
// parsed. Decoding continues with an age of zero either way.
func WithAgeErrorHandler(fn func(value string, err error)) DecodeOption {
	return func(o *decodeOptions) {
		o.onAgeError = fn
	}
}

// Decode parses a record block.
//
// Each line is split on its first colon; key and value are trimmed and the
// key is matched case-insensitively. Lines without a colon and unknown keys
// are ignored, and missing keys leave the zero value. The returned error only
// reports a failure of r itself.
func Decode(r io.Reader, opts ...DecodeOption) (Contact, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	var c Contact
	err := forEachLine(r, func(line string) bool {
		key, value, ok := splitLine(line)
		if !ok {
			return true
		}

		switch strings.ToLower(key) {
		case "nome":
			c.FirstName = value
		case "cognome":
			c.LastName = value
		case "indirizzo":
			c.Address = value
		case "telefono":
			c.Phone = value
		case "eta":
			age, err := strconv.Atoi(value)
			if err != nil {
				c.Age = 0
				if o.onAgeError != nil {
					o.onAgeError(value, err)
				}
				return true
			}
			c.Age = age
		}
		return true
	})
	if err != nil {
		return c, fmt.Errorf("contact: decode: %w", err)
	}
	return c, nil
}

// forEachLine calls fn with every line of r, terminator stripped, until fn
// returns false or r is exhausted. Lines may be of any length.
func forEachLine(r io.Reader, fn func(line string) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if !fn(line) {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// splitLine splits "Key: Value" on the first colon and trims both halves.
func splitLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
