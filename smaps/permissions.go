package smaps

// Permissions is the decoded permission column of a mapping header.
// The booleans are independent: a mapping that names neither 's' nor
// 'p' leaves both Shared and Private false.
type Permissions struct {
	Read    bool
	Write   bool
	Execute bool
	Shared  bool
	Private bool
}

// parsePermissions never fails. Characters outside the known alphabet
// are ignored so a kernel extending the column cannot break the parse.
func parsePermissions(s string) Permissions {
	var p Permissions
	for _, c := range s {
		switch c {
		case 'r':
			p.Read = true
		case 'w':
			p.Write = true
		case 'x':
			p.Execute = true
		case 's':
			p.Shared = true
		case 'p':
			p.Private = true
		}
	}
	return p
}

// String renders the column the way the kernel prints it, e.g. "rw-p".
func (p Permissions) String() string {
	b := []byte{'-', '-', '-', '-'}
	if p.Read {
		b[0] = 'r'
	}
	if p.Write {
		b[1] = 'w'
	}
	if p.Execute {
		b[2] = 'x'
	}
	if p.Shared {
		b[3] = 's'
	}
	if p.Private {
		b[3] = 'p'
	}
	return string(b)
}
