package reducer

import (
	"testing"
)

func TestPruneOrphans(t *testing.T) {
	roots := typeSet(nil, DefaultGCRootTypes)

	t.Run("unreachable entities are removed", func(t *testing.T) {
		data := parseData(t,
			"#1=SHAPE_DEFINITION_REPRESENTATION(#2,#3);\n"+
				"#2=PRODUCT_DEFINITION_SHAPE('','',$);\n"+
				"#3=SHAPE_REPRESENTATION('',(#4),$);\n"+
				"#4=CARTESIAN_POINT('',(0.,0.,0.));\n"+
				"#5=CARTESIAN_POINT('',(9.,9.,9.));\n")
		out := pruneOrphans(data.Entities, roots)
		if len(out) != 4 {
			t.Fatalf("expected 4 survivors, got %d", len(out))
		}
		for _, e := range out {
			if e.ID == 5 {
				t.Error("orphan #5 survived")
			}
		}
	})

	t.Run("source order is preserved", func(t *testing.T) {
		data := parseData(t,
			"#9=CARTESIAN_POINT('',(0.,0.,0.));\n"+
				"#1=SHAPE_DEFINITION_REPRESENTATION(#2,#3);\n"+
				"#2=PRODUCT_DEFINITION_SHAPE('','',$);\n"+
				"#3=SHAPE_REPRESENTATION('',(#9),$);\n")
		out := pruneOrphans(data.Entities, roots)
		if len(out) != 4 {
			t.Fatalf("expected 4 survivors, got %d", len(out))
		}
		if out[0].ID != 9 {
			t.Errorf("first survivor = #%d, want #9 (source order)", out[0].ID)
		}
	})

	t.Run("no roots means no pruning", func(t *testing.T) {
		data := parseData(t,
			"#1=CARTESIAN_POINT('',(0.,0.,0.));\n"+
				"#2=CARTESIAN_POINT('',(1.,1.,1.));\n")
		out := pruneOrphans(data.Entities, roots)
		if len(out) != 2 {
			t.Errorf("expected all entities kept, got %d", len(out))
		}
	})

	t.Run("complex entity with root sub-record anchors reachability", func(t *testing.T) {
		data := parseData(t,
			"#1=(APPLICATION_CONTEXT('')PRODUCT_CONTEXT('',#2,''));\n"+
				"#2=CARTESIAN_POINT('',(0.,0.,0.));\n"+
				"#3=CARTESIAN_POINT('',(1.,1.,1.));\n")
		out := pruneOrphans(data.Entities, roots)
		if len(out) != 2 {
			t.Fatalf("expected 2 survivors, got %d", len(out))
		}
	})

	t.Run("custom root set", func(t *testing.T) {
		data := parseData(t,
			"#1=WIDGET(#2);\n"+
				"#2=CARTESIAN_POINT('',(0.,0.,0.));\n"+
				"#3=CARTESIAN_POINT('',(1.,1.,1.));\n")
		out := pruneOrphans(data.Entities, typeSet([]string{"WIDGET"}, DefaultGCRootTypes))
		if len(out) != 2 {
			t.Fatalf("expected 2 survivors, got %d", len(out))
		}
	})
}
