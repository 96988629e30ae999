package testplan

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Kargones/plancheck/internal/entity/pxu"
)

func loadSample(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	f, err := os.Open("testdata/stress.pxu")
	require.NoError(t, err)
	defer f.Close()

	reg, err := Load(f, "testdata/stress.pxu", opts...)
	require.NoError(t, err)
	return reg
}

func TestLoad_SampleCorpus(t *testing.T) {
	reg := loadSample(t)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"dbus-cold-boot", "dbus-warm-boot", "strict-confine-mediacard"}, reg.IDs())

	for _, e := range reg.Entries() {
		assert.NotEmpty(t, e.Includes, "план %s должен иметь include", e.ID)
	}

	for _, id := range []string{"dbus-warm-boot", "dbus-cold-boot"} {
		e, err := reg.Lookup(id)
		require.NoError(t, err)
		assert.Len(t, e.BootstrapIncludes, 1, "план %s должен иметь один bootstrap_include", id)
	}

	media, err := reg.Lookup("strict-confine-mediacard")
	require.NoError(t, err)
	assert.Empty(t, media.BootstrapIncludes)
}

func TestLoad_FieldValues(t *testing.T) {
	reg := loadSample(t)

	warm, err := reg.Lookup("dbus-warm-boot")
	require.NoError(t, err)

	assert.Equal(t, "Warm boot stress test (by dbus)", warm.Name)
	assert.True(t, strings.HasPrefix(warm.Description, "This test plan reboots the machine"))
	assert.Equal(t, []string{"com.canonical.certification::reboot-run-generator"}, warm.BootstrapIncludes)
	assert.Equal(t, []string{
		"com.canonical.certification::warm-boot-loop-reboot1",
		"com.canonical.certification::warm-boot-loop-test1",
		"com.canonical.certification::warm-boot-loop-reboot2",
		"com.canonical.certification::warm-boot-loop-test2",
	}, warm.Includes, "порядок include должен сохраняться")
	assert.Equal(t, "testdata/stress.pxu:3", warm.Origin)
}

func TestLoad_IncludeOverrides(t *testing.T) {
	reg := loadSample(t)

	media, err := reg.Lookup("strict-confine-mediacard")
	require.NoError(t, err)

	assert.Equal(t, "com.canonical.certification::mediacard/sd-preinserted", media.Includes[0])
	assert.Equal(t, map[string]string{
		"com.canonical.certification::mediacard/sd-preinserted": "certification-status=blocker",
	}, media.IncludeOverrides)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantOrigin string
		wantReason string
	}{
		{
			name:       "нет id",
			src:        "unit: test plan\n_name: Без id\ninclude: a\n",
			wantOrigin: "p.pxu:1",
			wantReason: "id",
		},
		{
			name:       "нет unit",
			src:        "id: plan\ninclude: a\n",
			wantOrigin: "p.pxu:1",
			wantReason: "unit",
		},
		{
			name:       "unit не test plan",
			src:        "id: plan\n_name: X\nunit: job\n",
			wantOrigin: "p.pxu:3",
			wantReason: `"job"`,
		},
		{
			name:       "повторяющийся id",
			src:        "id: plan\nunit: test plan\n\nid: plan\nunit: test plan\n",
			wantOrigin: "p.pxu:4",
			wantReason: "p.pxu:1",
		},
		{
			name:       "нарушение формата",
			src:        "id: plan\nunit: test plan\nэто не поле\n",
			wantOrigin: "p.pxu:3",
			wantReason: "ключ: значение",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := Load(strings.NewReader(tt.src), "p.pxu")
			require.Error(t, err)
			assert.Nil(t, reg)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "ожидалась ParseError, получено %T", err)
			assert.Equal(t, tt.wantOrigin, parseErr.Origin)
			assert.Contains(t, parseErr.Reason, tt.wantReason)
		})
	}
}

func TestLoad_SyntaxErrorIsWrapped(t *testing.T) {
	_, err := Load(strings.NewReader("  висящее продолжение\n"), "p.pxu")

	var synErr *pxu.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, 1, synErr.Line)
}

func TestLoad_ForeignUnitsSkipped(t *testing.T) {
	src := strings.Join([]string{
		"id: smoke",
		"unit: test plan",
		"include: camera/detect",
		"",
		"id: camera/detect",
		"unit: job",
		"plugin: shell",
	}, "\n")

	_, err := Load(strings.NewReader(src), "mixed.pxu")
	require.Error(t, err, "без опции чужие юниты запрещены")

	reg, err := Load(strings.NewReader(src), "mixed.pxu", WithForeignUnitsSkipped())
	require.NoError(t, err)
	assert.Equal(t, []string{"smoke"}, reg.IDs())
}

func TestLoadFrom_DuplicateAcrossSources(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.LoadFrom(strings.NewReader("id: a\nunit: test plan\n"), "one.pxu"))

	err := reg.LoadFrom(strings.NewReader("id: b\nunit: test plan\n\nid: a\nunit: test plan\n"), "two.pxu")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "two.pxu:4", parseErr.Origin)
	assert.Contains(t, parseErr.Reason, "one.pxu:1")
	assert.Equal(t, []string{"a"}, reg.IDs(), "источник с ошибкой не должен загружаться частично")
}

func TestLoad_NameFallback(t *testing.T) {
	reg, err := Load(strings.NewReader("id: p\nunit: test plan\nname: Plain\ndescription: Text\n"), "p.pxu")
	require.NoError(t, err)

	e, err := reg.Lookup("p")
	require.NoError(t, err)
	assert.Equal(t, "Plain", e.Name)
	assert.Equal(t, "Text", e.Description)
	assert.NotNil(t, e.Includes)
	assert.NotNil(t, e.BootstrapIncludes)
}

// render записывает план в формате PXU.
func render(e Entry) string {
	var b strings.Builder
	b.WriteString("id: " + e.ID + "\n")
	b.WriteString("unit: test plan\n")
	b.WriteString("_name: " + e.Name + "\n")
	if e.Description != "" {
		b.WriteString("_description: " + e.Description + "\n")
	}
	if len(e.BootstrapIncludes) > 0 {
		b.WriteString("bootstrap_include:\n")
		for _, id := range e.BootstrapIncludes {
			b.WriteString("    " + id + "\n")
		}
	}
	if len(e.Includes) > 0 {
		b.WriteString("include:\n")
		for _, id := range e.Includes {
			b.WriteString("    " + id + "\n")
		}
	}
	return b.String()
}

func TestLoad_RoundTrip(t *testing.T) {
	idGen := rapid.StringMatching(`[a-z][a-z0-9\-]{0,15}(::[a-z][a-z0-9/\-]{0,15})?`)
	wordGen := rapid.StringMatching(`[A-Za-z0-9()]{1,10}`)

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "plans")
		ids := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z][a-z0-9\-]{0,20}`), n, n, rapid.ID[string]).Draw(t, "ids")

		want := make(map[string]Entry, n)
		blocks := make([]string, 0, n)
		for _, id := range ids {
			e := Entry{
				ID:                id,
				Name:              strings.Join(rapid.SliceOfN(wordGen, 1, 4).Draw(t, "name"), " "),
				Description:       strings.Join(rapid.SliceOfN(wordGen, 0, 6).Draw(t, "description"), " "),
				BootstrapIncludes: rapid.SliceOfN(idGen, 0, 3).Draw(t, "bootstrap"),
				Includes:          rapid.SliceOfN(idGen, 0, 6).Draw(t, "includes"),
			}
			want[id] = e
			blocks = append(blocks, render(e))
		}

		reg, err := Load(strings.NewReader(strings.Join(blocks, "\n")), "gen.pxu")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if reg.Len() != n {
			t.Fatalf("ожидалось %d планов, получено %d", n, reg.Len())
		}
		for id, w := range want {
			got, err := reg.Lookup(id)
			if err != nil {
				t.Fatalf("Lookup(%s): %v", id, err)
			}
			got.Origin = ""
			if diff := cmp.Diff(w, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("план %s отличается (-want +got):\n%s", id, diff)
			}
		}
	})
}
