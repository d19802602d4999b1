package service

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model/types"
	"xivcrit.app/backend/internal/pkg/apperr"
)

const (
	ProviderEtro    = "etro"
	ProviderXIVGear = "xivgear"
)

const etroGearsetURL = "https://etro.gg/api/gearsets/"

const xivGearFullDataURL = "https://api.xivgear.app/fulldata/"

var ErrUnknownBuildProvider = apperr.ErrInvalidReq.Msg("only etro.gg or xivgear.app job builds are supported")

// JobBuild ingests gear sets from etro.gg and xivgear.app. Fetched sets are
// memoized in process: published builds are effectively immutable.
type JobBuild struct {
	http *http.Client
	memo *gocache.Cache
}

func NewJobBuild() *JobBuild {
	return &JobBuild{
		http: &http.Client{Timeout: time.Second * 15},
		memo: gocache.New(time.Minute*30, time.Minute*10),
	}
}

// JobBuildResult is a provider build normalized into the stat block analyses
// consume. MainStatPreBonus carries no party composition bonus.
type JobBuildResult struct {
	Provider  string
	GearSetID string
	BuildName string
	Job       string
	Stats     types.JobBuildStats
}

// ParseBuildURL detects the provider and extracts the gear set reference.
// xivgear sheet links carry the selected set in onlySetIndex/selectedIndex.
func ParseBuildURL(raw string) (provider, gearSetID string, setIndex int, err error) {
	u, parseErr := url.Parse(raw)
	if parseErr != nil {
		return "", "", 0, ErrUnknownBuildProvider
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "etro.gg":
		id, err := etroGearSetID(u)
		if err != nil {
			return "", "", 0, err
		}
		return ProviderEtro, id, 0, nil
	case "xivgear.app":
		id, idx, err := xivGearSetID(u)
		if err != nil {
			return "", "", 0, err
		}
		return ProviderXIVGear, id, idx, nil
	}
	return "", "", 0, ErrUnknownBuildProvider
}

func etroGearSetID(u *url.URL) (string, error) {
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return "", apperr.ErrInvalidReq.Msg("etro URL carries no gear set ID")
	}
	id := segments[len(segments)-1]
	if !isUUID(id) {
		return "", apperr.ErrInvalidReq.Msg("etro gear set ID %q is not a valid UUID", id)
	}
	return id, nil
}

func xivGearSetID(u *url.URL) (string, int, error) {
	query := u.Query()
	page := query.Get("page")
	if page == "" {
		return "", 0, apperr.ErrInvalidReq.Msg("xivgear URL carries no page parameter")
	}

	parts := strings.Split(page, "|")
	var id string
	switch {
	// bis links follow bis|{job}|{expansion}|{tier} and are fetched by path
	case len(parts) > 1 && parts[0] == "bis":
		id = strings.Join(parts, "/")
	case isUUID(parts[len(parts)-1]):
		id = parts[len(parts)-1]
	default:
		return "", 0, apperr.ErrInvalidReq.Msg("xivgear gear set ID %q is not a valid UUID", parts[len(parts)-1])
	}

	idx := 0
	for _, key := range []string{"onlySetIndex", "selectedIndex"} {
		if v := query.Get(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				idx = n
				break
			}
		}
	}
	return id, idx, nil
}

func isUUID(s string) bool {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	// reject non-canonical spellings such as urn: prefixes or braces
	return parsed.String() == strings.ToLower(s)
}

// Fetch resolves a build URL into its stat block.
func (s *JobBuild) Fetch(ctx context.Context, buildURL string) (*JobBuildResult, error) {
	provider, gearSetID, setIndex, err := ParseBuildURL(buildURL)
	if err != nil {
		return nil, err
	}

	memoKey := provider + ":" + gearSetID + ":" + strconv.Itoa(setIndex)
	if cached, ok := s.memo.Get(memoKey); ok {
		result := cached.(JobBuildResult)
		return &result, nil
	}

	var result *JobBuildResult
	switch provider {
	case ProviderEtro:
		result, err = s.fetchEtro(ctx, gearSetID)
	case ProviderXIVGear:
		result, err = s.fetchXIVGear(ctx, gearSetID, setIndex)
	}
	if err != nil {
		return nil, err
	}

	s.memo.SetDefault(memoKey, *result)
	return result, nil
}

func (s *JobBuild) fetchEtro(ctx context.Context, gearSetID string) (*JobBuildResult, error) {
	body, err := s.get(ctx, etroGearsetURL+gearSetID)
	if err != nil {
		return nil, err
	}

	result := gjson.ParseBytes(body)
	abbrev := result.Get("jobAbbrev").String()
	job, ok := gamedata.JobNameByAbbrev(abbrev)
	if !ok {
		return nil, apperr.ErrUnsupportedJob.Msg("etro build is for unsupported job %q", abbrev)
	}
	profile := gamedata.JobProfiles[job]

	params := map[string]float64{}
	result.Get("totalParams").ForEach(func(_, p gjson.Result) bool {
		params[p.Get("name").String()] = p.Get("value").Float()
		return true
	})

	partyBonus := result.Get("partyBonus").Float()
	if partyBonus == 0 {
		partyBonus = 1
	}

	// etro applies the party bonus to the reported main stat; divide it back
	// out so the stored value is comparable with manual entry
	mainStat := int(math.Round(params[profile.MainStatType] / partyBonus))

	stats := types.JobBuildStats{
		MainStatPreBonus: mainStat,
		Determination:    int(params["DET"]),
		Speed:            int(params[profile.SpeedStat]),
		CriticalHit:      int(params["CRT"]),
		DirectHit:        int(params["DH"]),
		WeaponDamage:     int(params["Weapon Damage"]),
		Delay:            profile.WeaponDelay,
		PartyBonus:       partyBonus,
		GearSetID:        null.StringFrom(gearSetID),
		GearSetProvider:  null.StringFrom(ProviderEtro),
	}
	if profile.Tank {
		stats.SecondaryStat = null.IntFrom(int64(params["TEN"]))
	}

	return &JobBuildResult{
		Provider:  ProviderEtro,
		GearSetID: gearSetID,
		BuildName: result.Get("name").String(),
		Job:       job,
		Stats:     stats,
	}, nil
}

func (s *JobBuild) fetchXIVGear(ctx context.Context, gearSetID string, setIndex int) (*JobBuildResult, error) {
	// partyBonus=0 keeps the reported stats pre composition bonus
	body, err := s.get(ctx, xivGearFullDataURL+gearSetID+"?partyBonus=0")
	if err != nil {
		return nil, err
	}

	sets := gjson.GetBytes(body, "sets").Array()
	if len(sets) == 0 {
		return nil, apperr.ErrUpstream.Msg("xivgear sheet %q has no gear sets", gearSetID)
	}
	if setIndex < 0 || setIndex >= len(sets) {
		setIndex = 0
	}
	set := sets[setIndex]
	computed := set.Get("computedStats")

	abbrev := computed.Get("job").String()
	job, ok := gamedata.JobNameByAbbrev(abbrev)
	if !ok {
		return nil, apperr.ErrUnsupportedJob.Msg("xivgear build is for unsupported job %q", abbrev)
	}
	profile := gamedata.JobProfiles[job]

	mainStatKey := strings.ToLower(computed.Get("jobStats.mainStat").String())
	if mainStatKey == "" {
		mainStatKey = strings.ToLower(profile.MainStatType)
	}

	speedKey := "skillspeed"
	if profile.SpeedStat == "SPS" {
		speedKey = "spellspeed"
	}

	stats := types.JobBuildStats{
		MainStatPreBonus: int(computed.Get(mainStatKey).Int()),
		Determination:    int(computed.Get("determination").Int()),
		Speed:            int(computed.Get(speedKey).Int()),
		CriticalHit:      int(computed.Get("crit").Int()),
		DirectHit:        int(computed.Get("dhit").Int()),
		WeaponDamage:     int(computed.Get("wdMag").Int()),
		Delay:            profile.WeaponDelay,
		PartyBonus:       1,
		GearSetID:        null.StringFrom(gearSetID),
		GearSetProvider:  null.StringFrom(ProviderXIVGear),
	}
	if profile.Tank {
		stats.SecondaryStat = null.IntFrom(computed.Get("tenacity").Int())
	}

	return &JobBuildResult{
		Provider:  ProviderXIVGear,
		GearSetID: gearSetID,
		BuildName: set.Get("name").String(),
		Job:       job,
		Stats:     stats,
	}, nil
}

func (s *JobBuild) get(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := retry.DoWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, errors.Wrap(err, "jobbuild: create request")
		}

		resp, err := s.http.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "jobbuild: execute request")
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, retry.Unrecoverable(apperr.ErrNotFound.Msg("gear set not found at %s", rawURL))
		}
		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("jobbuild: unexpected status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		var critErr *apperr.CritError
		if errors.As(err, &critErr) {
			return nil, critErr
		}
		return nil, apperr.ErrUpstream.Msg("gear set provider request failed: %s", err)
	}
	return body, nil
}
