package ir

import "fmt"

type Kind int

const (
	ElementKind Kind = iota
	TextKind
	CDATAKind
	CommentKind
	ProcInstKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ElementKind:  "Element",
		TextKind:     "Text",
		CDATAKind:    "CDATA",
		CommentKind:  "Comment",
		ProcInstKind: "ProcInst",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Element":  ElementKind,
		"Text":     TextKind,
		"CDATA":    CDATAKind,
		"Comment":  CommentKind,
		"ProcInst": ProcInstKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		ElementKind,
		TextKind,
		CDATAKind,
		CommentKind,
		ProcInstKind,
	}
}

// IsCharData reports whether the kind carries a character payload only.
func (k Kind) IsCharData() bool {
	switch k {
	case TextKind, CDATAKind:
		return true
	default:
		return false
	}
}
