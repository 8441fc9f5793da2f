package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routekit-dev/routekit/depgraph"
	"github.com/routekit-dev/routekit/manifest/values"
)

func translationRun() *run {
	return &run{
		graph: depgraph.New(),
		idx: &index{
			storageSources: map[string]values.Reference{
				"data": values.MustReference("#backer"),
			},
		},
	}
}

func Test_addStrongDep_TranslatesSelfSourcedStorage(t *testing.T) {
	r := translationRun()
	r.addStrongDep(values.MustName("data"), values.SelfRef(), depgraph.Named("child"))

	assert.True(t, r.graph.HasEdge(depgraph.Named("backer"), depgraph.Named("child")))
	assert.False(t, r.graph.HasEdge(depgraph.Self(), depgraph.Named("child")))
}

func Test_addStrongDep_TranslatesNamedStorageSource(t *testing.T) {
	r := translationRun()
	r.addStrongDep(values.MustName("data"), values.MustReference("#data"), depgraph.Named("child"))

	assert.True(t, r.graph.HasEdge(depgraph.Named("backer"), depgraph.Named("child")))
	assert.False(t, r.graph.HasEdge(depgraph.Named("data"), depgraph.Named("child")))
}

func Test_addStrongDep_LeavesUnrelatedNamesAlone(t *testing.T) {
	r := translationRun()
	r.addStrongDep(values.MustName("other"), values.MustReference("#sibling"), depgraph.Named("child"))

	assert.True(t, r.graph.HasEdge(depgraph.Named("sibling"), depgraph.Named("child")))
}

func Test_addStrongDep_DropsOutOfScopeSources(t *testing.T) {
	r := translationRun()
	for _, source := range []values.Reference{
		values.ParentRef(), values.FrameworkRef(), values.DebugRef(), values.VoidRef(),
	} {
		r.addStrongDep(values.MustName("other"), source, depgraph.Named("child"))
	}

	assert.Empty(t, r.graph.Nodes())
}
