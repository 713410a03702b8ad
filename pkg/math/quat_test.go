package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat4RotateY90(t *testing.T) {
	// 90 degrees around Y: quaternion (0, sin45, 0, cos45)
	s := float32(math.Sin(math.Pi / 4))
	c := float32(math.Cos(math.Pi / 4))
	q := Quat{X: 0, Y: s, Z: 0, W: c}

	m := q.ToMat4()
	p := m.TransformPoint([3]float32{1, 0, 0})

	// Same behavior as RotateY(pi/2): (1,0,0) -> (0,0,-1)
	if abs(p[0]) > 0.001 || abs(p[1]) > 0.001 || abs(p[2]+1) > 0.001 {
		t.Errorf("Quat Y90: got %v, want (0, 0, -1)", p)
	}
}

func TestQuatMulIdentity(t *testing.T) {
	q := Quat{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5}
	got := q.Mul(QuatIdentity())
	if got != q {
		t.Errorf("q * identity = %v, want %v", got, q)
	}
}
