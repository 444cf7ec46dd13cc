package timeline

import (
	"crypto/rand"
	"encoding/base32"
	"strconv"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space, plenty for
// a single project's tracks and items.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func (s *Store) freshID(prefix string) string {
	for {
		id, err := newRandomID(prefix)
		if err != nil {
			// crypto/rand failing is effectively fatal; fall back to a
			// counter so the editor stays usable.
			s.fallbackSeq++
			return prefix + "-seq-" + strconv.Itoa(s.fallbackSeq)
		}
		if _, taken := s.tracks[id]; taken {
			continue
		}
		if _, taken := s.items[id]; taken {
			continue
		}
		return id
	}
}
