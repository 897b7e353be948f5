package stakehistory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedContributor struct {
	effective, activating, deactivating uint64
}

func (f fixedContributor) ActivatingAndDeactivating(uint64, *History) (uint64, uint64, uint64) {
	return f.effective, f.activating, f.deactivating
}

func TestBuildEntrySumsContributors(t *testing.T) {
	stakes := []Contributor{
		fixedContributor{effective: 100, activating: 10},
		fixedContributor{effective: 50, deactivating: 5},
		fixedContributor{activating: 7},
	}
	entry := BuildEntry(3, stakes, New(0))
	require.Equal(t, Entry{Effective: 150, Activating: 17, Deactivating: 5}, entry)
}

func TestBuildEntryEmptySet(t *testing.T) {
	entry := BuildEntry(0, nil, New(0))
	require.Equal(t, Entry{}, entry)
}
