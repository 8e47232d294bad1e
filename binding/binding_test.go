package binding

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ByLCY/truescale/model"
)

func sampleData() any {
	return map[string]any{
		"title": "Untitled",
		"year":  float64(2023),
		"big":   float64(1500000),
		"artist": map[string]any{
			"name": "Alessandro",
		},
		"works": []any{
			map[string]any{"name": "Feet Up"},
			map[string]any{"name": "Sofa", "tags": []any{"slouchy", "flop"}},
		},
	}
}

func TestInterpolate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"${title}, ${year}", "Untitled, 2023"},
		{"${ artist.name }", "Alessandro"},
		{"${works[1].name} / ${works[1].tags[0]}", "Sofa / slouchy"},
		{"${big}", "1500000"},
		{"${works[5].name}", "${works[5].name}"},
		{"${missing}", "${missing}"},
		{"${works[x]}", "${works[x]}"},
		{"${works[0]}", `{"name":"Feet Up"}`},
		{"no placeholders", "no placeholders"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, sampleData()); got != c.want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", c.in, got, c.want)
		}
	}
	if got := Interpolate("${title}", nil); got != "${title}" {
		t.Fatalf("data 为空时应保留占位符，实际 %q", got)
	}
}

func TestBindOnlyTouchesContent(t *testing.T) {
	doc := model.Default()
	doc.Content1 = "${title}, ${year}"
	doc.Content2 = "by ${artist.name}"
	got := Bind(doc, sampleData())
	if got.Content1 != "Untitled, 2023" || got.Content2 != "by Alessandro" {
		t.Fatalf("绑定结果错误: %q / %q", got.Content1, got.Content2)
	}
	got.Content1, got.Content2 = doc.Content1, doc.Content2
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("除文本外的字段不应改变")
	}
	if got.Frame1.HeightMm == doc.Frame1.HeightMm {
		t.Fatalf("绑定结果不应与原文档共享指针")
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${a} ${ b.c } ${a} ${}")
	if !reflect.DeepEqual(got, []string{"a", "b.c"}) {
		t.Fatalf("占位符列表错误: %v", got)
	}
}

func TestMissing(t *testing.T) {
	text := "${title} ${works[1].tags[0]} ${works[9].name} ${artist.age} ${title}"
	got := Missing(text, sampleData())
	if !reflect.DeepEqual(got, []string{"works[9].name", "artist.age"}) {
		t.Fatalf("缺失占位符列表错误: %v", got)
	}
	if got := Missing("${title}", sampleData()); got != nil {
		t.Fatalf("全部可解析时应返回 nil，实际 %v", got)
	}
}

func TestLoadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"title":"Poster","n":[1,2]}`), 0o644); err != nil {
		t.Fatalf("写入数据失败: %v", err)
	}
	data, err := LoadData(path)
	if err != nil {
		t.Fatalf("读取数据失败: %v", err)
	}
	if got := Interpolate("${title} ${n[1]}", data); got != "Poster 2" {
		t.Fatalf("插值结果错误: %q", got)
	}
	if _, err := LoadData(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("缺失文件应返回错误")
	}
}
