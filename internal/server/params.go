package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/zscene/pkg/errors"
	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/pipeline"
)

// frameOptions reads render options from the query string. Absent
// parameters stay zero so defaults apply later.
func frameOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	var err error

	if opts.Width, err = intParam(q, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "height"); err != nil {
		return opts, err
	}
	if opts.Zoom, err = floatParam(q, "zoom"); err != nil {
		return opts, err
	}
	if opts.Frame, err = intParam(q, "frame"); err != nil {
		return opts, err
	}
	if opts.Frames, err = intParam(q, "frames"); err != nil {
		return opts, err
	}
	if opts.Rotate, err = rotation(q.Get("rx"), q.Get("ry"), q.Get("rz")); err != nil {
		return opts, err
	}
	if v := q.Get("centered"); v != "" {
		centered, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid centered: %q", v)
		}
		opts.Centered = &centered
	}
	opts.Background = q.Get("background")
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func rotation(rx, ry, rz string) (geom.Vector, error) {
	var v geom.Vector
	for _, p := range []struct {
		name string
		raw  string
		dst  *float64
	}{{"rx", rx, &v.X}, {"ry", ry, &v.Y}, {"rz", rz, &v.Z}} {
		if p.raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(p.raw, 64)
		if err != nil {
			return v, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", p.name, p.raw)
		}
		*p.dst = f
	}
	return v, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return n, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return f, nil
}
