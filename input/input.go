// Package input reads the initial ages of a school from text.
package input

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/lanternfish/population"
)

// ErrInputMissing is returned when the input file does not exist.
var ErrInputMissing = errors.New("input: missing")

// ParseAges reads a comma-separated list of ages, such as "3,4,3,1,2".
// Surrounding whitespace and line breaks are ignored. Blank input yields an
// empty list.
func ParseAges(r io.Reader) ([]int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("input: reading ages: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return []int{}, nil
	}

	fields := strings.Split(text, ",")
	ages := make([]int, 0, len(fields))

	for i, field := range fields {
		field = strings.TrimSpace(field)

		age, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q is not an integer",
				population.ErrInvalidInput, i, field)
		}

		if err := population.ValidateAge(age); err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}

		ages = append(ages, age)
	}

	return ages, nil
}

// ReadAgesFile parses the ages stored in the file at path.
func ReadAgesFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
	}

	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	defer f.Close()

	return ParseAges(f)
}
