package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

// LoadOptions 从文件加载爆炸参数
//
// 根据扩展名选择格式：
//   - .yaml / .yml: YAML，键名与字段名一致（camelCase）
//   - .ini / .gcfg / .cfg: INI，参数位于 [confetti] 段
//
// 返回的 Options 尚未校验，调用方需要自行调用 Validate。
//
// INI 示例（颜色必须加引号，否则 # 会被当作注释）：
//
//	[confetti]
//	particleCount = 200
//	colors = "#FFC700"
//	colors = "#41BBC7"
//	particlesShape = circles
func LoadOptions(path string) (Options, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Options{}, fmt.Errorf("failed to read options file %s: %w", path, err)
		}
		opts, err := ParseOptionsYAML(data)
		if err != nil {
			return Options{}, fmt.Errorf("failed to parse options file %s: %w", path, err)
		}
		return opts, nil
	case ".ini", ".gcfg", ".cfg":
		var file iniFile
		if err := gcfg.ReadFileInto(&file, path); err != nil {
			return Options{}, fmt.Errorf("failed to parse options file %s: %w", path, err)
		}
		return file.Confetti.options()
	default:
		return Options{}, fmt.Errorf("unsupported options file type: %s", filepath.Ext(path))
	}
}

// ParseOptionsYAML 从 YAML 数据解析参数
//
// 返回：
//   - Options: 解析结果，未出现的字段为 nil
//   - error: YAML 语法错误或字段类型不匹配时返回错误
//
// colors 不是字符串数组时不报错，而是留给 Check 报告。
func ParseOptionsYAML(data []byte) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// ParseOptionsINI decodes options from an INI document with a [confetti] section.
func ParseOptionsINI(src string) (Options, error) {
	var file iniFile
	if err := gcfg.ReadStringInto(&file, src); err != nil {
		return Options{}, err
	}
	return file.Confetti.options()
}

// yamlOptions mirrors Options but keeps colors as a raw node so a
// non-list value reaches the validator instead of failing the decode.
type yamlOptions struct {
	ParticleCount          *float64       `yaml:"particleCount"`
	Duration               *float64       `yaml:"duration"`
	Colors                 yaml.Node      `yaml:"colors"`
	ParticleSize           *float64       `yaml:"particleSize"`
	Force                  *float64       `yaml:"force"`
	StageHeight            *float64       `yaml:"stageHeight"`
	StageWidth             *float64       `yaml:"stageWidth"`
	ParticlesShape         *ParticleShape `yaml:"particlesShape"`
	ShouldDestroyAfterDone *bool          `yaml:"shouldDestroyAfterDone"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	var raw yamlOptions
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*o = Options{
		ParticleCount:          raw.ParticleCount,
		Duration:               raw.Duration,
		ParticleSize:           raw.ParticleSize,
		Force:                  raw.Force,
		StageHeight:            raw.StageHeight,
		StageWidth:             raw.StageWidth,
		ParticlesShape:         raw.ParticlesShape,
		ShouldDestroyAfterDone: raw.ShouldDestroyAfterDone,
	}
	o.Colors, o.colorsMalformed = decodeColors(&raw.Colors)
	return nil
}

func decodeColors(n *yaml.Node) ([]string, bool) {
	switch {
	case n.Kind == 0:
		return nil, false
	case n.Kind == yaml.ScalarNode && n.Tag == "!!null":
		return nil, false
	case n.Kind != yaml.SequenceNode:
		return nil, true
	}

	colors := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, true
		}
		colors = append(colors, item.Value)
	}
	return colors, false
}

// iniFile is the gcfg layout. Values stay strings so that unset fields
// remain distinguishable from zero values.
type iniFile struct {
	Confetti iniOptions
}

type iniOptions struct {
	ParticleCount          string
	Duration               string
	Colors                 []string
	ParticleSize           string
	Force                  string
	StageHeight            string
	StageWidth             string
	ParticlesShape         string
	ShouldDestroyAfterDone string
}

func (s iniOptions) options() (Options, error) {
	var (
		opts Options
		err  error
	)

	numbers := []struct {
		name string
		raw  string
		dst  **float64
	}{
		{"particleCount", s.ParticleCount, &opts.ParticleCount},
		{"duration", s.Duration, &opts.Duration},
		{"particleSize", s.ParticleSize, &opts.ParticleSize},
		{"force", s.Force, &opts.Force},
		{"stageHeight", s.StageHeight, &opts.StageHeight},
		{"stageWidth", s.StageWidth, &opts.StageWidth},
	}
	for _, n := range numbers {
		if *n.dst, err = parseOptionalFloat(n.raw); err != nil {
			return Options{}, fmt.Errorf("invalid %s %q: %w", n.name, n.raw, err)
		}
	}

	if len(s.Colors) > 0 {
		opts.Colors = append([]string(nil), s.Colors...)
	}
	if v := strings.TrimSpace(s.ParticlesShape); v != "" {
		opts.ParticlesShape = Shape(ParticleShape(v))
	}
	if v := strings.TrimSpace(s.ShouldDestroyAfterDone); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Options{}, fmt.Errorf("invalid shouldDestroyAfterDone %q: %w", v, err)
		}
		opts.ShouldDestroyAfterDone = Bool(b)
	}
	return opts, nil
}

func parseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
