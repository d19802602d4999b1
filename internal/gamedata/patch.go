package gamedata

// PatchWindow bounds a game patch in report timestamps (Unix ms, inclusive).
type PatchWindow struct {
	Version float64
	Start   int64
	End     int64
}

// PatchTimes holds the global service patch windows. Windows are adjacent:
// each start is one millisecond after the previous end.
var PatchTimes = []PatchWindow{
	{Version: 6.4, Start: 1684836000000, End: 1696327199999},
	{Version: 6.5, Start: 1696327200000, End: 1719565299999},
	{Version: 7.0, Start: 1719565200000, End: 1721109699999},
	{Version: 7.01, Start: 1721109600000, End: 1722322899999},
	{Version: 7.05, Start: 1722322800000, End: 1731427199999},
	{Version: 7.1, Start: 1731427200000, End: 1741791600000},
}

// PatchTimesCN holds the Chinese service patch windows, which lag the global
// service by roughly five months.
var PatchTimesCN = []PatchWindow{
	{Version: 6.4, Start: 1697508000000, End: 1710827999999},
	{Version: 6.5, Start: 1710828000000, End: 1732593599999},
	{Version: 7.0, Start: 1732593600000, End: 1737442799999},
	{Version: 7.05, Start: 1737442800000, End: 1746252000000},
}

// PatchTimesKR holds the Korean service patch windows.
var PatchTimesKR = []PatchWindow{
	{Version: 6.4, Start: 1691474400000, End: 1704260399999},
	{Version: 6.5, Start: 1704260400000, End: 1727818799999},
	{Version: 7.0, Start: 1727818800000, End: 1733982299999},
	{Version: 7.05, Start: 1733982300000, End: 1743500000000},
}

// PatchAt returns the patch version active at the given report timestamp for
// a region ("CN", "KR", or any global region code such as "NA"). Returns 0
// when the timestamp falls outside every known window.
func PatchAt(reportTime int64, region string) float64 {
	var windows []PatchWindow
	switch region {
	case "CN":
		windows = PatchTimesCN
	case "KR":
		windows = PatchTimesKR
	default:
		windows = PatchTimes
	}

	for _, w := range windows {
		if reportTime >= w.Start && reportTime <= w.End {
			return w.Version
		}
	}
	return 0
}
