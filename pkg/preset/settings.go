package preset

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// ViewerSettings 查看器的全局设置
type ViewerSettings struct {
	Muted      bool    `yaml:"muted"`
	Volume     float64 `yaml:"volume"` // 0.0 ~ 1.0
	LastPreset string  `yaml:"lastPreset,omitempty"`
}

const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// DefaultSettings returns the settings used before anything was saved.
func DefaultSettings() ViewerSettings {
	return ViewerSettings{Volume: 0.6}
}

// LoadSettings 从 gdata 加载查看器设置
//
// 如果 gdataManager 为 nil 或设置不存在，使用默认设置
//
// 返回：
//   - ViewerSettings: 加载到的设置，音量已限制在 0.0 ~ 1.0
//   - error: 读取或反序列化失败时返回错误（此时返回默认设置，仅用于记录日志）
func (s *Store) LoadSettings() (ViewerSettings, error) {
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return DefaultSettings(), nil
	}
	data, err := s.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("failed to load settings: %w", err)
	}
	vs := DefaultSettings()
	if err := yaml.Unmarshal(data, &vs); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	vs.Volume = clampVolume(vs.Volume)
	return vs, nil
}

// SaveSettings 保存查看器设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 序列化或保存失败时返回错误
func (s *Store) SaveSettings(vs ViewerSettings) error {
	if s.gdataManager == nil {
		return nil
	}
	vs.Volume = clampVolume(vs.Volume)
	data, err := yaml.Marshal(vs)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[PresetStore] Settings saved")
	return nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
