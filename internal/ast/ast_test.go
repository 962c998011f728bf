package ast

import "testing"

func TestUsage_Has(t *testing.T) {
	u := Read | Write
	if !u.Has(Read) || !u.Has(Write) {
		t.Fatal("expected both Read and Write set")
	}
	if (Read).Has(Write) {
		t.Fatal("Read alone should not have Write")
	}
}

func TestUsage_IsOutput(t *testing.T) {
	if (Read).IsOutput() {
		t.Fatal("read-only handle should not be an output")
	}
	if !(Read | Write).IsOutput() {
		t.Fatal("read+write handle should be an output")
	}
}

func TestModule_HandleByName(t *testing.T) {
	m := &Module{
		Handles: []Handle{
			{Name: "a", Type: TInt{}},
			{Name: "b", Type: TBool{}},
		},
	}

	h, ok := m.HandleByName("b")
	if !ok || h.Name != "b" {
		t.Fatalf("HandleByName(b) = %+v, %v", h, ok)
	}

	_, ok = m.HandleByName("missing")
	if ok {
		t.Fatal("expected HandleByName(missing) to fail")
	}
}

func TestModule_TypeForField(t *testing.T) {
	m := &Module{Handles: []Handle{{Name: "a", Type: TChar{}}}}

	typ, ok := m.TypeForField("a")
	if !ok {
		t.Fatal("expected TypeForField(a) to succeed")
	}
	if _, isChar := typ.(TChar); !isChar {
		t.Fatalf("TypeForField(a) = %T, want TChar", typ)
	}
}
