package consulting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/profile"
)

func getProfileCapability(deps Deps) capability.Capability {
	return capability.New(NameGetProfile).
		WithDescription("Loads the store's profile: identity, performance, customers, and district trends.").
		WithStoreID().
		WithHandler(func(ctx context.Context, input capability.Input) (capability.Output, error) {
			if input.StoreID == "" {
				return capability.NewErrorPayload(NameGetProfile, input.Query,
					profile.ErrNotFound).Output(), nil
			}

			p, err := deps.Profiles.Get(ctx, input.StoreID)
			if err != nil {
				return capability.NewErrorPayload(NameGetProfile, input.Query, err).Output(), nil
			}
			return capability.NewFinalOutput(renderProfile(p)), nil
		}).
		MustBuild()
}

// updatePatch is the query payload update_profile expects.
type updatePatch struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
}

func updateProfileCapability(deps Deps) capability.Capability {
	return capability.New(NameUpdateProfile).
		WithDescription(`Updates one profile field. Query is JSON: {"section": "...", "key": "...", "value": ...}.`).
		WithStoreID().
		WithHandler(func(ctx context.Context, input capability.Input) (capability.Output, error) {
			var patch updatePatch
			if err := json.Unmarshal([]byte(input.Query), &patch); err != nil {
				return capability.NewErrorPayload(NameUpdateProfile, input.Query,
					fmt.Errorf("query is not a valid update: %w", err)).Output(), nil
			}

			updated, err := deps.Profiles.Update(ctx, input.StoreID, patch.Section, patch.Key, patch.Value)
			if err != nil {
				return capability.NewErrorPayload(NameUpdateProfile, input.Query, err).Output(), nil
			}
			return capability.NewOutput(fmt.Sprintf("updated %s.%s for %s",
				patch.Section, patch.Key, updated.StoreName())).WithProfile(updated), nil
		}).
		MustBuild()
}

func renderProfile(p *profile.Profile) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "## %s\n", p.StoreName())

	section := func(title string, pairs [][2]string) {
		var lines []string
		for _, pair := range pairs {
			if strings.TrimSpace(pair[1]) == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s: %s", pair[0], pair[1]))
		}
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(b, "\n### %s\n%s\n", title, strings.Join(lines, "\n"))
	}

	section("Basic info", [][2]string{
		{"Industry", p.Core.BasicInfo.Industry},
		{"District", p.Core.BasicInfo.District},
		{"Address", p.Core.BasicInfo.Address},
		{"Opened", p.Core.BasicInfo.OpenedAt},
	})
	section("Performance", [][2]string{
		{"Monthly sales", p.Core.Performance.MonthlySales},
		{"Sales trend", p.Core.Performance.SalesTrend},
		{"Average ticket", p.Core.Performance.AvgTicket},
		{"Peak hours", p.Core.Performance.PeakHours},
		{"Delivery share", p.Core.Performance.DeliveryShare},
		{"Repeat rate", p.Core.Performance.RepeatRate},
		{"Industry position", p.Core.Performance.IndustryPosition},
	})
	section("Customers", [][2]string{
		{"Main segment", p.Core.Customers.MainSegment},
		{"Gender split", p.Core.Customers.GenderSplit},
		{"Age bands", p.Core.Customers.AgeBands},
		{"New vs returning", p.Core.Customers.NewVsReturning},
		{"Resident share", p.Core.Customers.ResidentShare},
	})
	section("District trends", [][2]string{
		{"Traffic", p.Core.Trends.DistrictTraffic},
		{"Competition", p.Core.Trends.Competition},
		{"Seasonality", p.Core.Trends.Seasonality},
		{"Notes", p.Core.Trends.Notes},
	})
	return strings.TrimRight(b.String(), "\n")
}
