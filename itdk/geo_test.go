package itdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGeo(t *testing.T) {
	path := writeFile(t, "test.nodes.geo",
		"# header\n"+
			"node.geo N1:\tNA\tUS\tCA\tSan Jose\t37.3394\t-121.895\t\t\tmaxmind\n"+
			"node.geo N2:\tEU\tDE\t\t\t51.2993\t9.491\t\t\tmaxmind\n"+
			"node.geo N3:\tNA\tUS\t\t\tnotanumber\t9.491\t\t\tmaxmind\n")

	geo, err := LoadGeo(testLogger(), path)
	require.NoError(t, err)

	require.Len(t, geo, 2)
	assert.InDelta(t, 37.3394, geo["N1"].Lat, 1e-9)
	assert.InDelta(t, -121.895, geo["N1"].Lng, 1e-9)
	assert.Contains(t, geo, "N2")
	assert.NotContains(t, geo, "N3")
}

func TestFilterGeo(t *testing.T) {
	nodes := Nodes{
		"N1": {1},
		"N2": {2},
		"N3": {3},
	}
	geo := map[string]Coordinate{
		"N1": {Lat: 1, Lng: 2},
		"N3": {Lat: 3, Lng: 4},
	}

	removed := nodes.FilterGeo(testLogger(), geo)

	assert.Equal(t, 1, removed)
	assert.NotContains(t, nodes, "N2")
	assert.Len(t, nodes, 2)
}
