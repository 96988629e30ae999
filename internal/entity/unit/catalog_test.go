package unit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogSrc = `id: cpuinfo
unit: job
plugin: resource

id: camera/detect
unit: job
plugin: shell
category_id: camera
requires:
    device.category == 'CAPTURE'
    package.name == "fswebcam.v4l"

id: camera/still
plugin: shell
depends: camera/detect
after: cpuinfo

unit: job
plugin: shell

id: camera
unit: category

id: camera/detect
unit: job
plugin: manual

id: smoke
unit: test plan
include: camera/.*
`

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog(nil)
	require.NoError(t, c.LoadFrom(strings.NewReader(catalogSrc), "units.pxu"))
	return c
}

func TestCatalog_LoadFrom(t *testing.T) {
	c := loadCatalog(t)

	assert.Equal(t, []string{"cpuinfo", "camera/detect", "camera/still", "camera", "smoke"}, c.KnownIDs(),
		"блок без id пропускается, повторный id не добавляется")
	assert.Equal(t, 5, c.Len())

	detect, ok := c.Get("camera/detect")
	require.True(t, ok)
	assert.Equal(t, "shell", detect.Plugin, "сохраняется первое определение")
	assert.Equal(t, "camera", detect.CategoryID)
	assert.Equal(t, "units.pxu:5", detect.Origin)
}

func TestCatalog_Job(t *testing.T) {
	c := loadCatalog(t)

	still, ok := c.Job("camera/still")
	require.True(t, ok, "юнит без поля unit считается заданием")
	assert.Equal(t, []string{"camera/detect"}, still.Depends)
	assert.Equal(t, []string{"cpuinfo"}, still.After)

	_, ok = c.Job("camera")
	assert.False(t, ok, "категория не является заданием")
	_, ok = c.Job("smoke")
	assert.False(t, ok)
	_, ok = c.Job("missing")
	assert.False(t, ok)

	var jobs []string
	for _, j := range c.Jobs() {
		jobs = append(jobs, j.ID)
	}
	assert.Equal(t, []string{"cpuinfo", "camera/detect", "camera/still"}, jobs)
}

func TestUnit_ResourceJobs(t *testing.T) {
	c := loadCatalog(t)

	detect, _ := c.Job("camera/detect")
	assert.Equal(t, []string{"device", "package"}, detect.ResourceJobs(), "литералы в кавычках не считаются ресурсами")
	assert.Equal(t, []string{"package.name == \"fswebcam.v4l\""}, detect.RequiresFor("package"))
	assert.Empty(t, detect.RequiresFor("cpuinfo"))
}

func TestCatalog_SyntaxError(t *testing.T) {
	c := NewCatalog(nil)
	err := c.LoadFrom(strings.NewReader("id: a\nне поле\n"), "bad.pxu")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.pxu:2")
}

func TestUnit_ResourceJobs_Expressions(t *testing.T) {
	tests := []struct {
		name     string
		requires []string
		want     []string
	}{
		{"без пространства имён", []string{"package.name == 'fswebcam'"}, []string{"package"}},
		{
			"с пространством имён",
			[]string{"com.canonical.certification::device.category == 'CAPTURE'"},
			[]string{"com.canonical.certification::device"},
		},
		{
			"несколько ресурсов в выражении",
			[]string{"ns::device.category == 'WIRELESS' and package.name == 'iw'"},
			[]string{"ns::device", "package"},
		},
		{"ресурс с косой чертой", []string{"snap/info.name == 'core'"}, []string{"snap/info"}},
		{"точка внутри литерала", []string{"cpuinfo.type in ('x86.64', \"arm.v8\")"}, []string{"cpuinfo"}},
		{"повторы убираются", []string{"device.a == 1", "device.b == 2"}, []string{"device"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &Unit{ID: "job", Requires: tt.requires}
			assert.Equal(t, tt.want, u.ResourceJobs())
		})
	}
}

func TestUnit_RequiresFor_Namespaced(t *testing.T) {
	u := &Unit{ID: "camera/detect", Requires: []string{
		"com.canonical.certification::device.category == 'CAPTURE'",
		"package.name == 'fswebcam'",
	}}

	assert.Equal(t, []string{"com.canonical.certification::device.category == 'CAPTURE'"},
		u.RequiresFor("com.canonical.certification::device"))
	assert.Empty(t, u.RequiresFor("device"), "сравнивается id в том виде, в каком он записан")
}
