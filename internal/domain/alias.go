package domain

// Maps a normalized raw worker name to its canonical name. Many raw
// spellings may point at one canonical identity. The map is treated as
// a value: rename operations build a new map rather than mutating the
// one concurrent readers hold.
type AliasMap map[string]string

// Clone returns an independent copy. A nil receiver clones to an empty
// non-nil map so callers can insert into the result.
func (m AliasMap) Clone() AliasMap {
	out := make(AliasMap, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
