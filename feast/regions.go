package feast

import (
	"context"

	"github.com/rushteam/agrikit/core"
	"github.com/rushteam/agrikit/feature"
)

// RegionQuery 描述区域气候在 Feast 中的存放方式
type RegionQuery struct {
	// FeatureView 特征视图名称，默认 "region_climate"
	FeatureView string

	// EntityKey 实体列名，默认 "region"
	EntityKey string

	// Project 项目名称（可选）
	Project string
}

func (q RegionQuery) withDefaults() RegionQuery {
	if q.FeatureView == "" {
		q.FeatureView = "region_climate"
	}
	if q.EntityKey == "" {
		q.EntityKey = "region"
	}
	return q
}

// Ref 返回气候特征的 Feast 特征引用，例如 "region_climate:PRECTOTCORR_Su"
func (q RegionQuery) Ref(name string) string {
	return q.withDefaults().FeatureView + ":" + name
}

// LoadRegionProfiles 为给定区域拉取 4 个气候特征并生成 RegionProfile。
// 任一区域缺少任一气候特征都会失败（MISSING_FEATURE），不做部分覆盖。
func LoadRegionProfiles(ctx context.Context, client Client, regions []string, q RegionQuery) ([]feature.RegionProfile, error) {
	if len(regions) == 0 {
		return nil, nil
	}
	q = q.withDefaults()

	refs := make([]string, len(feature.ClimateFeatureNames))
	for i, name := range feature.ClimateFeatureNames {
		refs[i] = q.Ref(name)
	}
	rows := make([]map[string]any, len(regions))
	for i, r := range regions {
		rows[i] = map[string]any{q.EntityKey: r}
	}

	resp, err := client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   refs,
		EntityRows: rows,
		Project:    q.Project,
	})
	if err != nil {
		return nil, core.Wrap(core.ModuleFeature, core.ErrorCodeUnavailable, "load region climate from feast", err)
	}
	if len(resp.FeatureVectors) != len(regions) {
		return nil, core.Errorf(core.ModuleFeature, core.ErrorCodeInvalidInput,
			"feast returned %d rows for %d regions", len(resp.FeatureVectors), len(regions))
	}

	profiles := make([]feature.RegionProfile, len(regions))
	for i, region := range regions {
		values := make(map[string]float64, len(refs))
		for j, ref := range refs {
			f, ok := resp.FeatureVectors[i].Values[ref].(float64)
			if !ok {
				return nil, core.Errorf(core.ModuleFeature, core.ErrorCodeMissingFeature,
					"missing feature: %s for region %q", ref, region)
			}
			values[feature.ClimateFeatureNames[j]] = f
		}
		profiles[i] = feature.RegionProfile{
			Name: region,
			Climate: feature.Climate{
				Precipitation: values[feature.MonsoonPrecipitation],
				SpringMax:     values[feature.SpringMaxTemperature],
				WinterMin:     values[feature.WinterMinTemperature],
				Humidity:      values[feature.MonsoonHumidity],
			},
		}
	}
	return profiles, nil
}
