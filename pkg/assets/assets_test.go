package assets

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/toastify-dev/toastify/internal/config"
	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

func TestEmbedded(t *testing.T) {
	icons, err := Embedded().Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range iconTypes() {
		if !strings.HasPrefix(icons[k], "<svg") {
			t.Errorf("icon %s = %q", k, icons[k])
		}
	}
}

func TestFSOverridesAndFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"info.svg":  {Data: []byte("  <svg id=\"info\"/>\n")},
		"error.svg": {Data: []byte("")},
	}
	icons, err := FS(fsys, "mem").Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if icons[toast.TypeInfo] != `<svg id="info"/>` {
		t.Errorf("info = %q", icons[toast.TypeInfo])
	}
	defaults := toast.DefaultIcons()
	if icons[toast.TypeError] != defaults[toast.TypeError] {
		t.Error("empty file should fall back to the embedded icon")
	}
	if icons[toast.TypeSuccess] != defaults[toast.TypeSuccess] {
		t.Error("missing file should fall back to the embedded icon")
	}
}

func TestDirMissingDirectory(t *testing.T) {
	icons, err := Dir(t.TempDir() + "/nope").Load(context.Background())
	if err != nil {
		t.Fatalf("missing files should fall back, got %v", err)
	}
	if len(icons) != 4 {
		t.Errorf("icons = %d, want 4", len(icons))
	}
}

type fakeS3 struct {
	objects map[string]string
	fail    error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Bucket+"/"+*in.Key)
	if f.fail != nil {
		return nil, f.fail
	}
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{objects: map[string]string{
		"icons/warning.svg": `<svg id="warn"/>`,
	}}
	src := S3(client, "brand", "icons/")

	icons, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if icons[toast.TypeWarning] != `<svg id="warn"/>` {
		t.Errorf("warning = %q", icons[toast.TypeWarning])
	}
	if icons[toast.TypeInfo] != toast.DefaultIcons()[toast.TypeInfo] {
		t.Error("missing object should fall back")
	}
	if len(client.keys) != 4 || client.keys[0] != "brand/icons/info.svg" {
		t.Errorf("keys = %v", client.keys)
	}
	if src.Describe() != "s3://brand/icons/" {
		t.Errorf("Describe() = %q", src.Describe())
	}
}

func TestS3SourceError(t *testing.T) {
	client := &fakeS3{fail: fmt.Errorf("access denied")}
	_, err := S3(client, "brand", "").Load(context.Background())
	if !errors.HasCode(err, "T300") {
		t.Errorf("error = %v, want T300", err)
	}
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	client := NewS3Client(S3Config{Region: "eu-west-1", Endpoint: "http://localhost:9000", UsePathStyle: true})

	opts := client.Options()
	if opts.Region != "eu-west-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %v", opts.BaseEndpoint)
	}
	if !opts.UsePathStyle {
		t.Error("UsePathStyle not set")
	}
}

func TestFromConfig(t *testing.T) {
	src, err := FromConfig(config.IconsConfig{})
	if err != nil || src.Describe() != "embedded" {
		t.Errorf("empty config = %v, %v", src, err)
	}

	src, err = FromConfig(config.IconsConfig{Dir: "icons", S3: config.S3Config{Bucket: "b"}})
	if err != nil || src.Describe() != "dir:icons" {
		t.Errorf("dir should win: %v, %v", src, err)
	}

	src, err = FromConfig(config.IconsConfig{S3: config.S3Config{Bucket: "b", Prefix: "p/", Region: "eu-west-1"}})
	if err != nil || src.Describe() != "s3://b/p/" {
		t.Errorf("s3 config = %v, %v", src, err)
	}

	if _, err := FromConfig(config.IconsConfig{S3: config.S3Config{Prefix: "p/"}}); !errors.HasCode(err, "T301") {
		t.Errorf("prefix without bucket = %v, want T301", err)
	}
}
