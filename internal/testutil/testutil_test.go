package testutil

import "testing"

func TestMockWriter(t *testing.T) {
	mw := NewMockWriter()

	if _, err := mw.Write([]byte("first line\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := mw.Write([]byte("second line\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	AssertEqual(t, mw.WriteCount(), 2)
	AssertEqual(t, len(mw.Lines()), 2)
	AssertEqual(t, mw.Contains("second"), true)
	AssertEqual(t, mw.Contains("third"), false)
}

func TestMockWriterConcurrent(t *testing.T) {
	mw := NewMockWriter()

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				mw.Write([]byte("line\n")) //nolint:errcheck
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	AssertEqual(t, mw.WriteCount(), 400)
	AssertEqual(t, len(mw.Lines()), 400)
}
