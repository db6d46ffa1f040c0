package obsdata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obskit/obstable/pkg/obsdata"
)

func TestVariableNames(t *testing.T) {
	v := obsdata.Variable{Group: "ObsValue", Name: "brightnessTemperature", Channels: []int{1, 4}}
	require.Equal(t, "ObsValue/brightnessTemperature", v.FullName())
	require.Equal(t, "brightnessTemperature_4", v.ChannelName(4))
	require.Equal(t, "ObsValue/brightnessTemperature_1", v.KeyForChannel(1))

	g := obsdata.Variable{Group: "GeoVaLs", Name: "air_pressure"}
	require.Equal(t, "GeoVaLs/air_pressure (level 3)", g.KeyAtLevel(3))
}

func TestLevelResolved(t *testing.T) {
	require.True(t, obsdata.Variable{Group: "GeoVaLs", Name: "x"}.LevelResolved())
	require.True(t, obsdata.Variable{Group: "ObsDiag", Name: "x"}.LevelResolved())
	require.True(t, obsdata.Variable{Group: "ObsBiasTerm", Name: "x"}.LevelResolved())
	require.False(t, obsdata.Variable{Group: "ObsValue", Name: "x"}.LevelResolved())
}

func TestVariableRequestKeys(t *testing.T) {
	t.Run("Scalar", func(t *testing.T) {
		r := obsdata.VariableRequest{Variable: obsdata.Variable{Group: "MetaData", Name: "latitude"}}
		require.Equal(t, []string{"MetaData/latitude"}, r.Keys())
	})

	t.Run("Channels", func(t *testing.T) {
		r := obsdata.VariableRequest{
			Variable: obsdata.Variable{Group: "ObsValue", Name: "bt", Channels: []int{2, 5}},
		}
		require.Equal(t, []string{"ObsValue/bt_2", "ObsValue/bt_5"}, r.Keys())
	})

	t.Run("Levels", func(t *testing.T) {
		r := obsdata.VariableRequest{
			Variable: obsdata.Variable{Group: "GeoVaLs", Name: "air_pressure"},
			Levels:   []int{0, 7},
		}
		require.Equal(t, []string{
			"GeoVaLs/air_pressure (level 0)",
			"GeoVaLs/air_pressure (level 7)",
		}, r.Keys())
	})
}
