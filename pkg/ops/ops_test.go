package ops_test

import (
	"testing"

	"github.com/graph-guard/chainmap/pkg/ops"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	require.True(t, ops.Comparable[int]().Valid())
	require.True(t, ops.Deep[[]int]().Valid())
	require.True(t, ops.Bytes().Valid())

	s := ops.Comparable[int]()
	s.Destroy = nil
	require.False(t, s.Valid())
	require.False(t, ops.Set[int]{}.Valid())
}

func TestComparable(t *testing.T) {
	s := ops.Comparable[string]()
	c, err := s.Copy("abc")
	require.NoError(t, err)
	require.Equal(t, "abc", c)
	require.True(t, s.Equal("abc", c))
	require.False(t, s.Equal("abc", "abd"))
	s.Destroy(&c)
	require.Zero(t, c)
}

func TestDeep(t *testing.T) {
	type Employee struct {
		ID     int64
		Name   string
		Salary int64
	}
	s := ops.Deep[Employee]()
	e := Employee{ID: 2198329, Name: "John Dow", Salary: 100000}
	c, err := s.Copy(e)
	require.NoError(t, err)
	require.True(t, s.Equal(e, c))
	c.Salary++
	require.False(t, s.Equal(e, c))
	s.Destroy(&c)
	require.Zero(t, c)
}

func TestBytes(t *testing.T) {
	s := ops.Bytes()
	orig := []byte("abc")
	c, err := s.Copy(orig)
	require.NoError(t, err)
	require.True(t, s.Equal(orig, c))

	orig[0] = 'x'
	require.Equal(t, []byte("abc"), c)
	require.False(t, s.Equal(orig, c))

	n, err := s.Copy(nil)
	require.NoError(t, err)
	require.Nil(t, n)

	s.Destroy(&c)
	require.Nil(t, c)
	s.Destroy(&c)
}

func TestZero(t *testing.T) {
	ops.Zero[int](nil)
	i := 42
	ops.Zero(&i)
	require.Zero(t, i)
}

func TestIsNil(t *testing.T) {
	var p *int
	var m map[string]int
	var s []byte
	var f func()
	var c chan int
	var e error
	for _, v := range []any{nil, p, m, s, f, c, e} {
		require.True(t, ops.IsNil(v), "%#v", v)
	}
	i := 0
	for _, v := range []any{0, "", 'a', &i, []byte{}, map[int]int{}, struct{}{}} {
		require.False(t, ops.IsNil(v), "%#v", v)
	}
}
