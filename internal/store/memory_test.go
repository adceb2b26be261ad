package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

func TestRecordStoreOrdersAndIsolates(t *testing.T) {
	in := []rental.Record{
		{Date: rental.NewDate(2011, 1, 3), Hour: 2, Count: 3},
		{Date: rental.NewDate(2011, 1, 1), Hour: 5, Count: 1},
		{Date: rental.NewDate(2011, 1, 1), Hour: 0, Count: 2},
	}
	s := NewRecordStore(in)
	in[0].Count = 99

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, 0, all[0].Hour)
	assert.Equal(t, 5, all[1].Hour)
	assert.EqualValues(t, 3, all[2].Count)

	all[0].Count = 42
	assert.EqualValues(t, 2, s.All()[0].Count)

	lo, hi, err := s.Bounds()
	require.NoError(t, err)
	assert.Equal(t, "2011-01-01", lo.String())
	assert.Equal(t, "2011-01-03", hi.String())
}

func TestRecordStoreRange(t *testing.T) {
	s := NewRecordStore([]rental.Record{
		{Date: rental.NewDate(2011, 1, 1), Count: 1},
		{Date: rental.NewDate(2011, 1, 2), Count: 2},
		{Date: rental.NewDate(2011, 1, 3), Count: 3},
	})
	got := s.Range(rental.NewDate(2011, 1, 2), rental.NewDate(2011, 1, 3))
	assert.Len(t, got, 2)
	assert.Empty(t, s.Range(rental.NewDate(2011, 1, 3), rental.NewDate(2011, 1, 2)))
}

func TestRecordStoreClamp(t *testing.T) {
	s := NewRecordStore([]rental.Record{
		{Date: rental.NewDate(2011, 1, 1)},
		{Date: rental.NewDate(2011, 12, 31)},
	})
	start, end, err := s.Clamp(rental.Date{}, rental.NewDate(2013, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "2011-01-01", start.String())
	assert.Equal(t, "2011-12-31", end.String())

	start, end, err = s.Clamp(rental.NewDate(2011, 3, 1), rental.NewDate(2011, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, "2011-03-01", start.String())
	assert.Equal(t, "2011-04-01", end.String())
}

func TestEmptyStore(t *testing.T) {
	s := NewRecordStore(nil)
	assert.Zero(t, s.Len())
	_, _, err := s.Bounds()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.Range(rental.NewDate(2011, 1, 1), rental.NewDate(2012, 1, 1)))
}
