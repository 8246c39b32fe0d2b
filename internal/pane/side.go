package pane

import "fmt"

type Side int

const (
	Left Side = iota
	Right
)

// Sides lists both panes in display order.
var Sides = [...]Side{Left, Right}

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func ParseSide(v string) (Side, error) {
	switch v {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown side %q", v)
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
