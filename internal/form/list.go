package form

// StringList is an ordered list field such as an experience's jobdesk.
// Every method returns a new list and leaves the receiver untouched.
// Out of range indices are ignored.
type StringList []string

// Append adds one blank entry at the end.
func (l StringList) Append() StringList {
	out := make(StringList, len(l), len(l)+1)
	copy(out, l)
	return append(out, "")
}

// Update sets entry i to v.
func (l StringList) Update(i int, v string) StringList {
	out := make(StringList, len(l))
	copy(out, l)
	if i >= 0 && i < len(out) {
		out[i] = v
	}
	return out
}

// Remove drops entry i; later entries shift down by one.
func (l StringList) Remove(i int) StringList {
	if i < 0 || i >= len(l) {
		out := make(StringList, len(l))
		copy(out, l)
		return out
	}
	out := make(StringList, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...)
}

// Values returns the entries as a plain slice.
func (l StringList) Values() []string {
	return []string(l)
}

// orBlank returns vals as a list, or a single blank entry when vals is empty.
func orBlank(vals []string) StringList {
	if len(vals) == 0 {
		return StringList{""}
	}
	out := make(StringList, len(vals))
	copy(out, vals)
	return out
}
