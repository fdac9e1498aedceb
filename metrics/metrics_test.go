// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/metrics"
	"github.com/gogpu/shadergraph/node"
	"github.com/gogpu/shadergraph/nodes"
)

func addGraph(t *testing.T) (*graph.Graph, *node.Registry) {
	t.Helper()
	reg := nodes.NewRegistry()
	g := graph.New()
	mk := func(id string) *node.Expression {
		e, err := reg.New(id)
		require.NoError(t, err)
		g.AddNode(e)
		return e
	}
	a, b, add, out := mk("scalar"), mk("scalar"), mk("add"), mk("out_fragment")
	for _, l := range [][2]graph.PinID{
		{a.Out(0), add.In(0)},
		{b.Out(0), add.In(1)},
		{add.Out(0), out.In(0)},
	} {
		_, err := g.AddLink(l[0], l[1])
		require.NoError(t, err)
	}
	return g, reg
}

func family(t *testing.T, fams []*dto.MetricFamily, name string) *dto.MetricFamily {
	t.Helper()
	for _, f := range fams {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestCollectorObservesCompileAll(t *testing.T) {
	g, reg := addGraph(t)
	c := metrics.New()
	promReg := prometheus.NewPedanticRegistry()
	require.NoError(t, c.Register(promReg))

	opts := glsl.DefaultOptions()
	opts.Observer = c
	_, err := glsl.CompileAll(context.Background(), g, reg, opts)
	require.NoError(t, err)

	fams, err := promReg.Gather()
	require.NoError(t, err)

	evals := map[string]float64{}
	for _, m := range family(t, fams, "shadergraph_node_evaluations_total").GetMetric() {
		evals[labelValue(m, "stage")+"/"+labelValue(m, "archetype")] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{
		"fragment/scalar":       2,
		"fragment/add":          1,
		"fragment/out_fragment": 1,
	}, evals)

	passes := family(t, fams, "shadergraph_passes_total").GetMetric()
	require.Len(t, passes, 2)
	for _, m := range passes {
		assert.Equal(t, float64(1), m.GetCounter().GetValue())
	}

	for _, m := range family(t, fams, "shadergraph_hoisted_variables").GetMetric() {
		want := 0.0
		if labelValue(m, "stage") == "fragment" {
			want = 1
		}
		assert.Equal(t, want, m.GetGauge().GetValue(), labelValue(m, "stage"))
	}

	for _, m := range family(t, fams, "shadergraph_pass_statements").GetMetric() {
		h := m.GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		if labelValue(m, "stage") == "fragment" {
			assert.Equal(t, float64(2), h.GetSampleSum())
		}
	}
}

func TestCollectorCounts(t *testing.T) {
	c := metrics.New()
	assert.Equal(t, 0, testutil.CollectAndCount(c))

	g, reg := addGraph(t)
	opts := glsl.DefaultOptions()
	opts.Observer = c
	_, _, err := glsl.Compile(g, reg, ir.StageFragment, opts)
	require.NoError(t, err)

	assert.Equal(t, 3, testutil.CollectAndCount(c, "shadergraph_node_evaluations_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "shadergraph_passes_total"))
	problems, err := testutil.CollectAndLint(c)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestRegisterTwice(t *testing.T) {
	c := metrics.New()
	r := prometheus.NewRegistry()
	require.NoError(t, c.Register(r))
	assert.Error(t, c.Register(r))
}

func TestHandler(t *testing.T) {
	c := metrics.New()
	r := prometheus.NewRegistry()
	require.NoError(t, c.Register(r))
	c.PassFinished(ir.StageVertex, glsl.Stats{Statements: 3, Hoisted: 1})

	srv := httptest.NewServer(metrics.Handler(r))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `shadergraph_passes_total{stage="vertex"} 1`)
	assert.Contains(t, string(body), `shadergraph_hoisted_variables{stage="vertex"} 1`)
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := metrics.Serve(ctx, "127.0.0.1:0", prometheus.NewRegistry(), nil)
	assert.NoError(t, err)
}
