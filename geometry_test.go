package atlaspack

import "testing"

func TestSize_Area(t *testing.T) {
	cases := []struct {
		size Size
		want int
	}{
		{Size{Width: 10, Height: 4}, 40},
		{Size{Width: 0, Height: 4}, 0},
		{Size{}, 0},
	}
	for _, c := range cases {
		if got := c.size.Area(); got != c.want {
			t.Errorf("%+v.Area() = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestRectangle_Equality(t *testing.T) {
	a := Rectangle{Position: Position{X: 1, Y: 2}, Size: Size{Width: 3, Height: 4}}
	b := Rectangle{Position: Position{X: 1, Y: 2}, Size: Size{Width: 3, Height: 4}}
	c := Rectangle{Position: Position{X: 1, Y: 2}, Size: Size{Width: 3, Height: 5}}

	if a != b {
		t.Errorf("expected %+v == %+v", a, b)
	}
	if a == c {
		t.Errorf("expected %+v != %+v", a, c)
	}
}

func TestPosition_ZeroValue(t *testing.T) {
	var p Position
	if p.X != 0 || p.Y != 0 {
		t.Errorf("zero Position = %+v, want (0,0)", p)
	}
}
