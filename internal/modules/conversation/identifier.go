package conversation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// ParseIdentifier turns user input into a chat identifier: an int64 for
// numeric ids and an "@handle" string otherwise. Accepted forms are
// https://t.me/<name>, @name, a numeric id such as -1001234567890, and a
// bare name.
func ParseIdentifier(input string) (any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, oops.With("input", input).Wrap(errors.ErrInvalidInput)
	}

	if link, ok := trimLinkPrefix(input); ok {
		u, err := url.Parse("https://" + link)
		if err != nil {
			return nil, oops.With("input", input).Wrap(errors.ErrInvalidInput)
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		name := segments[len(segments)-1]
		if name == "" {
			return nil, oops.With("input", input).Wrap(errors.ErrInvalidInput)
		}
		return "@" + strings.TrimPrefix(name, "@"), nil
	}

	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		return id, nil
	}

	handle := strings.TrimPrefix(input, "@")
	if handle == "" || strings.ContainsAny(handle, " \t\n/") {
		return nil, oops.With("input", input).Wrap(errors.ErrInvalidInput)
	}
	return "@" + handle, nil
}

func trimLinkPrefix(s string) (string, bool) {
	for _, prefix := range []string{"https://", "http://"} {
		s = strings.TrimPrefix(s, prefix)
	}
	for _, host := range []string{"t.me/", "telegram.me/", "www.t.me/"} {
		if rest, ok := strings.CutPrefix(s, host); ok {
			return "t.me/" + rest, true
		}
	}
	return "", false
}
