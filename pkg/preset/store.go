// Package preset persists named burst options across runs using gdata.
//
// Every preset is stored as its own YAML property; a separate index
// property lists the saved names. When no gdata manager is available the
// store degrades to an in-memory map so the viewer keeps working.
package preset

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/confetti/pkg/config"
)

// 存储路径常量
const (
	presetObject = "presets"
	indexObject  = "preset_index"
	indexProp    = "names"
)

// ErrNotFound is returned when no stored or built-in preset has the name.
var ErrNotFound = errors.New("preset not found")

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Store 预设存储
type Store struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	names        []string
	memory       map[string][]byte
}

// Open 打开 appName 对应的 gdata 存储
//
// 参数：
//   - appName: gdata 应用名，决定存储目录
//
// 返回：
//   - *Store: 预设存储，总是可用
//
// gdata 打开失败或索引损坏只记录日志，返回的存储退化为仅内存模式或空索引。
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[PresetStore] Warning: gdata unavailable: %v (presets will not persist)", err)
		m = nil
	}
	s, err := NewStore(m)
	if err != nil {
		log.Printf("[PresetStore] Warning: %v (starting with an empty index)", err)
	}
	return s
}

// NewStore 创建预设存储并加载名称索引
//
// 参数：
//   - m: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//
// 返回：
//   - *Store: 预设存储实例，即使出错也可使用
//   - error: 索引加载或反序列化失败时返回错误（不影响创建）
func NewStore(m *gdata.Manager) (*Store, error) {
	s := &Store{
		gdataManager: m,
		memory:       make(map[string][]byte),
	}
	return s, s.loadIndex()
}

// Persistent reports whether presets survive the process.
func (s *Store) Persistent() bool { return s.gdataManager != nil }

// Names returns the saved preset names, sorted.
func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// Save 校验参数并以 name 保存预设
//
// 参数：
//   - name: 预设名称，只允许字母、数字、下划线和短横线，最长 64 个字符
//   - opts: 要保存的爆炸参数，必须通过 config.Check
//
// 返回：
//   - error: 名称非法、参数校验失败、序列化或写入失败时返回错误
//
// 同名预设会被覆盖，内置预设也会被同名的已保存预设遮蔽。
func (s *Store) Save(name string, opts config.Options) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid preset name %q", name)
	}
	if err := config.Check(opts); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}

	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal preset %q: %w", name, err)
	}

	if s.gdataManager == nil {
		s.memory[name] = data
	} else if err := s.gdataManager.SaveObjectProp(presetObject, name, data); err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}

	if !s.has(name) {
		s.names = append(s.names, name)
		sort.Strings(s.names)
		if err := s.saveIndex(); err != nil {
			return err
		}
	}
	log.Printf("[PresetStore] Preset %q saved", name)
	return nil
}

// Load 按名称加载预设
//
// 先查找已保存的预设，再回退到内置预设。
//
// 参数：
//   - name: 预设名称
//
// 返回：
//   - config.Options: 预设参数的独立副本，调用方可以随意修改
//   - error: 名称不存在时返回 ErrNotFound，读取或解析失败时返回包装后的错误
func (s *Store) Load(name string) (config.Options, error) {
	if s.has(name) {
		data, err := s.read(name)
		if err != nil {
			return config.Options{}, err
		}
		opts, err := config.ParseOptionsYAML(data)
		if err != nil {
			return config.Options{}, fmt.Errorf("preset %q: %w", name, err)
		}
		return opts, nil
	}
	if opts, ok := builtins[name]; ok {
		return opts.Clone(), nil
	}
	return config.Options{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Delete 删除已保存的预设
//
// 参数：
//   - name: 预设名称
//
// 返回：
//   - error: 名称不存在时返回 ErrNotFound，存储失败时返回包装后的错误
//
// 预设内容和索引中的名称都会被删除。内置预设不能删除。
func (s *Store) Delete(name string) error {
	for i, n := range s.names {
		if n != name {
			continue
		}
		if s.gdataManager != nil {
			if err := s.gdataManager.DeleteObjectProp(presetObject, name); err != nil {
				return fmt.Errorf("failed to delete preset %q: %w", name, err)
			}
		}
		s.names = append(s.names[:i], s.names[i+1:]...)
		delete(s.memory, name)
		if err := s.saveIndex(); err != nil {
			return err
		}
		log.Printf("[PresetStore] Preset %q deleted", name)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (s *Store) has(name string) bool {
	i := sort.SearchStrings(s.names, name)
	return i < len(s.names) && s.names[i] == name
}

func (s *Store) read(name string) ([]byte, error) {
	if s.gdataManager == nil {
		return s.memory[name], nil
	}
	data, err := s.gdataManager.LoadObjectProp(presetObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %q: %w", name, err)
	}
	return data, nil
}

func (s *Store) loadIndex() error {
	s.names = nil
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(indexObject, indexProp) {
		return nil
	}
	data, err := s.gdataManager.LoadObjectProp(indexObject, indexProp)
	if err != nil {
		return fmt.Errorf("failed to load preset index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("failed to unmarshal preset index: %w", err)
	}
	for _, n := range names {
		if validName.MatchString(n) {
			s.names = append(s.names, n)
		}
	}
	sort.Strings(s.names)
	return nil
}

func (s *Store) saveIndex() error {
	if s.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.names)
	if err != nil {
		return fmt.Errorf("failed to marshal preset index: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(indexObject, indexProp, data); err != nil {
		return fmt.Errorf("failed to save preset index: %w", err)
	}
	return nil
}
