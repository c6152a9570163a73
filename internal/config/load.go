package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"
)

// AppName 用于生成默认配置路径。
const AppName = "phrase"

// EnvPrefix 是环境变量前缀，例如 PHRASE_LIST_TWO_ELEMENT。
const EnvPrefix = "PHRASE_"

// options 配置加载选项。
type options struct {
	cmd          *cli.Command
	configPaths  []string
	pathRequired bool // 显式指定的配置文件必须存在
	envPrefix    string
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithConfigPaths 设置配置文件搜索路径，命中首个文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithConfigFile 指定唯一的配置文件，文件不存在时 [Load] 返回错误。
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPaths = []string{path}
		o.pathRequired = true
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 前缀 + 大写的配置 key，点号 (.) 和连字符 (-) 转为下划线 (_)：
//   - PHRASE_OUTPUT_FORMAT → output.format
//   - PHRASE_LIST_TWO_ELEMENT → list.two-element
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// DefaultPaths 返回默认配置文件的搜索顺序，先命中的文件生效。
//
//  1. ./.phrase.yaml - 当前目录应用配置
//  2. ~/.phrase.yaml - 用户主目录配置
//  3. /etc/phrase/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
func DefaultPaths() []string {
	paths := []string{"." + AppName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppName+".yaml"))
	}
	paths = append(paths, "/etc/"+AppName+"/config.yaml")

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并，最后校验结果。
//
// 优先级 (从低到高)：默认值 → 配置文件 → 环境变量 → CLI flags。
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load(opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths()
	}

	defaults := DefaultConfig()
	configMap := structToMap(reflect.ValueOf(defaults))

	// 1️⃣ 配置文件 (按顺序搜索，找到第一个即停止)
	loaded, err := mergeFirstFile(configMap, o.configPaths)
	if err != nil {
		return nil, err
	}
	if !loaded {
		if o.pathRequired {
			return nil, fmt.Errorf("config file %s not found", o.configPaths[0])
		}
		slog.Debug("No config file found, using defaults")
	}

	// 2️⃣ 环境变量
	if o.envPrefix != "" {
		for envKey, configPath := range envBindings(o.envPrefix, configKeys(reflect.TypeOf(defaults))) {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// 3️⃣ CLI flags (最高优先级，仅当用户明确指定时)
	if o.cmd != nil {
		applyFlags(o.cmd, configMap, reflect.TypeOf(defaults), "")
	}

	var cfg Config
	if err := decode(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的 CLI 版本：读取 --config、PHRASE_ 环境变量与显式设置的 flags。
func LoadCmd(cmd *cli.Command) (*Config, error) {
	opts := []Option{WithCommand(cmd), WithEnvPrefix(EnvPrefix)}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, WithConfigFile(path))
	}

	return Load(opts...)
}

func mergeFirstFile(configMap map[string]any, paths []string) (bool, error) {
	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue // 文件不存在或无法读取，尝试下一个路径
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return false, fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path)

		return true, nil
	}

	return false, nil
}

// configKeys 递归收集配置结构体的叶子 key，例如 list.two-element。
func configKeys(typ reflect.Type) []string {
	var keys []string
	walkFields(typ, "", func(fullKey string, _ reflect.Type) {
		keys = append(keys, fullKey)
	})

	return keys
}

// walkFields 以 json tag 为 key 深度优先遍历叶子字段。
func walkFields(typ reflect.Type, prefix string, fn func(fullKey string, fieldType reflect.Type)) {
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := tagName(field)
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if field.Type.Kind() == reflect.Struct {
			walkFields(field.Type, key, fn)

			continue
		}
		fn(key, field.Type)
	}
}

// envBindings 根据配置 key 生成环境变量映射。
func envBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 key 中的 "." 替换为 "-" 得到，例如 list.two-element → --list-two-element。
func applyFlags(cmd *cli.Command, configMap map[string]any, typ reflect.Type, prefix string) {
	walkFields(typ, prefix, func(fullKey string, fieldType reflect.Type) {
		flag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(flag) {
			return
		}

		switch fieldType.Kind() {
		case reflect.String:
			setByPath(configMap, fullKey, cmd.String(flag))
		case reflect.Bool:
			setByPath(configMap, fullKey, cmd.Bool(flag))
		case reflect.Int:
			setByPath(configMap, fullKey, cmd.Int(flag))
		default:
			// 不支持的类型，忽略
		}
	})
}

func tagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func structToMap(val reflect.Value) map[string]any {
	typ := val.Type()
	out := make(map[string]any, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := tagName(field)
		if key == "" || !field.IsExported() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			out[key] = structToMap(val.Field(i))

			continue
		}
		out[key] = val.Field(i).Interface()
	}

	return out
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	normalized := normalizeMapKeys(raw)
	if normalized == nil {
		return map[string]any{}, nil
	}
	configMap, ok := normalized.(map[string]any)
	if !ok {
		return nil, errors.New("config root must be object")
	}

	return configMap, nil
}

func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}

		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeMapKeys(value)
		}

		return out
	default:
		return val
	}
}

func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if valueMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, valueMap)

				continue
			}
		}
		dst[key] = value
	}
}

func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func decode(data map[string]any, out *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
