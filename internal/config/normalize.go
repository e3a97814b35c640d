package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/apisite/internal/foundation/normalization"
)

// NormalizationResult captures adjustments made by NormalizeConfig.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations and path prefixes in place.
// Unknown enumeration values fall back to their default with a warning.
func NormalizeConfig(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	c.Monitoring.Logging.Level = normalizeEnum(res, "monitoring.logging.level", logLevelNormalizer, c.Monitoring.Logging.Level)
	c.Monitoring.Logging.Format = normalizeEnum(res, "monitoring.logging.format", logFormatNormalizer, c.Monitoring.Logging.Format)
	c.Render.Mode = normalizeEnum(res, "render.mode", renderModeNormalizer, c.Render.Mode)
	c.Routes.KindStyle = normalizeEnum(res, "routes.kind_style", kindStyleNormalizer, c.Routes.KindStyle)

	c.Routes.APIPrefix = normalizePrefix(res, "routes.api_prefix", c.Routes.APIPrefix)
	c.Routes.DocsPrefix = normalizePrefix(res, "routes.docs_prefix", c.Routes.DocsPrefix)
	c.Monitoring.Metrics.Path = normalizePrefix(res, "monitoring.metrics.path", c.Monitoring.Metrics.Path)

	for i, ext := range c.Docs.Extensions {
		norm := strings.ToLower(strings.TrimSpace(ext))
		if norm != "" && !strings.HasPrefix(norm, ".") {
			norm = "." + norm
		}
		if norm != ext {
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("docs.extensions[%d]", i), ext, norm))
			c.Docs.Extensions[i] = norm
		}
	}
	if c.Render.Concurrency < 0 {
		res.Warnings = append(res.Warnings, warnChanged("render.concurrency", c.Render.Concurrency, 0))
		c.Render.Concurrency = 0
	}
	return res
}

func normalizeEnum[T ~string](res *NormalizationResult, field string, n *normalization.Normalizer[T], value T) T {
	if strings.TrimSpace(string(value)) == "" {
		return ""
	}
	if !n.IsValid(string(value)) {
		res.Warnings = append(res.Warnings, warnUnknown(field, string(value), string(n.Default())))
		return n.Default()
	}
	norm := n.Normalize(string(value))
	if norm != value {
		res.Warnings = append(res.Warnings, warnChanged(field, value, norm))
	}
	return norm
}

// normalizePrefix gives a non-empty path a single leading slash and no trailing slash.
func normalizePrefix(res *NormalizationResult, field, value string) string {
	trimmed := strings.Trim(strings.TrimSpace(value), "/")
	if trimmed == "" {
		return ""
	}
	norm := "/" + trimmed
	if norm != value {
		res.Warnings = append(res.Warnings, warnChanged(field, value, norm))
	}
	return norm
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
