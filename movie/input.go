package movie

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrInvalidYear = errors.New("invalid year")
	ErrNoInput     = errors.New("no input")
)

// ParseError reports a year line that is not a base 10 integer.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse year %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidYear
}

func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Input: s, Err: err}
	}
	return year, nil
}

// Reader reads movies as line pairs: title, then year. Lines have no length limit.
type Reader struct {
	reader *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// readLine returns the next line without its terminator. A final line without a
// newline still counts; ErrNoInput means nothing was left to read.
func (r *Reader) readLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line == "":
		return "", ErrNoInput
	case err != nil && !errors.Is(err, io.EOF):
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadMovie writes a prompt before each line it reads.
func (r *Reader) ReadMovie(prompt io.Writer) (Movie, error) {
	fmt.Fprint(prompt, "Enter title: ")
	title, err := r.readLine()
	if err != nil {
		return Movie{}, fmt.Errorf("read title: %w", err)
	}
	fmt.Fprint(prompt, "Enter year: ")
	line, err := r.readLine()
	if err != nil {
		return Movie{}, fmt.Errorf("read year: %w", err)
	}
	year, err := ParseYear(line)
	if err != nil {
		return Movie{}, err
	}
	return New(title, year), nil
}
