package game

import "testing"

func TestComposeFloors(t *testing.T) {
	c := NewScoreCompositor()
	if got := c.Compose(10, 1.0); got != 10 {
		t.Errorf("Compose(10,1) = %d", got)
	}
	if got := c.Compose(5, 0.7); got != 3 {
		t.Errorf("Compose(5,0.7) = %d, want floor(3.5)", got)
	}
	if got := c.Compose(10, 0); got != 0 {
		t.Errorf("Compose(10,0) = %d", got)
	}
}

func TestFruitMultiplierSpentOnce(t *testing.T) {
	c := NewScoreCompositor()
	c.ArmFruitMultiplier(2.0)
	if got := c.Compose(30, 1.5); got != 90 {
		t.Fatalf("armed compose = %d, want 90", got)
	}
	if got := c.Compose(30, 1.5); got != 45 {
		t.Fatalf("second compose = %d, the multiplier applies exactly once", got)
	}
}

func TestArmIgnoresNonPositive(t *testing.T) {
	c := NewScoreCompositor()
	c.ArmFruitMultiplier(0)
	c.ArmFruitMultiplier(-2)
	if c.FruitMultiplier() != 1.0 {
		t.Fatalf("multiplier = %v, want untouched 1.0", c.FruitMultiplier())
	}
}

func TestResetDisarms(t *testing.T) {
	c := NewScoreCompositor()
	c.ArmFruitMultiplier(3.0)
	c.Reset()
	if got := c.Compose(10, 1.0); got != 10 {
		t.Fatalf("compose after reset = %d, want 10", got)
	}
}
