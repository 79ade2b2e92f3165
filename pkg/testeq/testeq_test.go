package testeq_test

import (
	"fmt"
	"testing"

	"github.com/graph-guard/chainmap/pkg/testeq"
	"github.com/stretchr/testify/require"
)

type TestWriter struct{ Writes []string }

func (w *TestWriter) Helper() {}

func (w *TestWriter) Errorf(format string, v ...any) {
	w.Writes = append(w.Writes, fmt.Sprintf(format, v...))
}

// visitOf visits the pairs of kv, a flat list of keys and values.
func visitOf(kv ...any) testeq.Visitor[string, int] {
	return func(fn func(string, *int) bool) {
		for i := 0; i+1 < len(kv); i += 2 {
			v := kv[i+1].(int)
			if !fn(kv[i].(string), &v) {
				return
			}
		}
	}
}

func TestContentsEmpty(t *testing.T) {
	w := new(TestWriter)
	ok := testeq.Contents(w, "key", map[string]int{}, visitOf(), testeq.Equal[int])
	require.Len(t, w.Writes, 0)
	require.True(t, ok)
}

func TestContentsEqual(t *testing.T) {
	w := new(TestWriter)
	ok := testeq.Contents(w, "key",
		map[string]int{"a": 1, "b": 2, "c": 3},
		visitOf("c", 3, "a", 1, "b", 2),
		testeq.Equal[int],
	)
	require.Len(t, w.Writes, 0)
	require.True(t, ok)
}

func TestContentsMismatch(t *testing.T) {
	w := new(TestWriter)
	ok := testeq.Contents(w, "key",
		map[string]int{"a": 1, "b": 2, "c": 3},
		visitOf("c", 9, "a", 7, "b", 2),
		testeq.Equal[int],
	)
	require.Equal(t, []string{
		"mismatching key a: expected 1, got 7",
		"mismatching key c: expected 3, got 9",
	}, w.Writes)
	require.False(t, ok)
}

func TestContentsMissingUnexpected(t *testing.T) {
	w := new(TestWriter)
	ok := testeq.Contents(w, "key",
		map[string]int{"a": 1, "b": 2, "d": 4},
		visitOf("x", 24, "b", 2, "e", 5),
		testeq.Equal[int],
	)
	require.Equal(t, []string{
		"missing key a (1)",
		"missing key d (4)",
		"unexpected key e (5)",
		"unexpected key x (24)",
	}, w.Writes)
	require.False(t, ok)
}

func TestContentsDuplicate(t *testing.T) {
	w := new(TestWriter)
	ok := testeq.Contents(w, "key",
		map[string]int{"a": 1},
		visitOf("a", 1, "a", 1),
		testeq.Equal[int],
	)
	require.Equal(t, []string{"duplicate key a"}, w.Writes)
	require.False(t, ok)
}
