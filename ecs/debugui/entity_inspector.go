package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/curvedemo/ecs"
)

// LabelFunc names an entity in the browser. Returning "" falls back to the id.
type LabelFunc func(storage *ecs.Storage, id ecs.EntityId) string

// EntityInfo is one row of the entity table.
type EntityInfo struct {
	ID          ecs.EntityId
	ArchetypeID uint32
	Label       string
	Components  []string
}

// EntityInspector lists entities and edits the components of the selected
// one in place.
type EntityInspector struct {
	storage *ecs.Storage
	label   LabelFunc

	entities    []EntityInfo
	lastShape   [2]int
	selected    ecs.EntityId
	filterText  string
	sortByLabel bool
}

func NewEntityInspector(storage *ecs.Storage, label LabelFunc) *EntityInspector {
	return &EntityInspector{storage: storage, label: label}
}

// Selected returns the selected entity, or 0.
func (ei *EntityInspector) Selected() ecs.EntityId {
	return ei.selected
}

func (ei *EntityInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 260), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ei.refresh()

	imgui.InputTextWithHint("##filter", "Filter...", &ei.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Checkbox("By name", &ei.sortByLabel) {
		ei.sort()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, e := range ei.filtered() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%s##%d", e.Label, e.ID), ei.selected == e.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ei.selected = e.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(e.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Separator()
	ei.renderSelected()
	imgui.End()
}

// refresh rebuilds the rows when archetypes or entity counts changed.
func (ei *EntityInspector) refresh() {
	archetypes := ei.storage.GetArchetypes()
	total := 0
	for _, a := range archetypes {
		total += a.Len()
	}
	shape := [2]int{len(archetypes), total}
	if ei.entities != nil && shape == ei.lastShape {
		return
	}
	ei.lastShape = shape

	ei.entities = ei.entities[:0]
	for _, a := range archetypes {
		names := make([]string, len(a.Types()))
		for i, t := range a.Types() {
			names[i] = t.Name()
		}
		for id := range a.Iter() {
			label := ""
			if ei.label != nil {
				label = ei.label(ei.storage, id)
			}
			if label == "" {
				label = fmt.Sprintf("#%d", id.Index())
			}
			ei.entities = append(ei.entities, EntityInfo{ID: id, ArchetypeID: a.ID(), Label: label, Components: names})
		}
	}
	ei.sort()
}

func (ei *EntityInspector) sort() {
	sort.SliceStable(ei.entities, func(i, j int) bool {
		a, b := ei.entities[i], ei.entities[j]
		if ei.sortByLabel && a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.ID < b.ID
	})
}

func (ei *EntityInspector) filtered() []EntityInfo {
	if ei.filterText == "" {
		return ei.entities
	}
	needle := strings.ToLower(ei.filterText)
	out := make([]EntityInfo, 0, len(ei.entities))
	for _, e := range ei.entities {
		haystack := strings.ToLower(e.Label + " " + strings.Join(e.Components, " "))
		if strings.Contains(haystack, needle) {
			out = append(out, e)
		}
	}
	return out
}

func (ei *EntityInspector) renderSelected() {
	if ei.selected == 0 {
		imgui.Text("No entity selected")
		return
	}
	archetype := ei.storage.GetArchetypeById(ei.selected.ArchetypeId())
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d is gone", ei.selected))
		return
	}

	for _, t := range archetype.Types() {
		component := ei.storage.GetComponent(ei.selected, t)
		if component == nil {
			continue
		}
		if !imgui.TreeNodeStr(t.String()) {
			continue
		}
		v := reflect.ValueOf(component).Elem()
		if v.Kind() == reflect.Struct {
			for _, f := range fieldCache.Fields(v.Type()) {
				renderValue(f.Name, t.Name()+"."+f.Name, v.Field(f.Index))
			}
		} else {
			renderValue(t.Name(), t.Name(), v)
		}
		imgui.TreePop()
	}
}

// renderValue draws an editor for v. Addressable scalars are edited in place;
// id keeps widget labels unique.
func renderValue(name, id string, v reflect.Value) {
	label := name + "##" + id

	switch v.Kind() {
	case reflect.Float32:
		if v.CanAddr() {
			imgui.InputFloat(label, (*float32)(v.Addr().UnsafePointer()))
			return
		}
	case reflect.Float64:
		if v.CanSet() {
			f := float32(v.Float())
			if imgui.InputFloat(label, &f) {
				v.SetFloat(float64(f))
			}
			return
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.CanSet() {
			n := int32(v.Int())
			if imgui.InputInt(label, &n) && !v.OverflowInt(int64(n)) {
				v.SetInt(int64(n))
			}
			return
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.CanSet() && v.Type().Size() <= 2 {
			n := int32(v.Uint())
			if imgui.InputInt(label, &n) && n >= 0 && !v.OverflowUint(uint64(n)) {
				v.SetUint(uint64(n))
			}
			return
		}
	case reflect.Bool:
		if v.CanAddr() {
			imgui.Checkbox(label, (*bool)(v.Addr().UnsafePointer()))
			return
		}
	case reflect.String:
		if v.CanSet() {
			s := v.String()
			if imgui.InputTextWithHint(label, "", &s, imgui.InputTextFlagsNone, nil) {
				v.SetString(s)
			}
			return
		}
	case reflect.Array:
		if imgui.TreeNodeStr(label) {
			for i := 0; i < v.Len(); i++ {
				renderValue(fmt.Sprintf("[%d]", i), fmt.Sprintf("%s.%d", id, i), v.Index(i))
			}
			imgui.TreePop()
		}
		return
	case reflect.Struct:
		if imgui.TreeNodeStr(label) {
			for _, f := range fieldCache.Fields(v.Type()) {
				renderValue(f.Name, id+"."+f.Name, v.Field(f.Index))
			}
			imgui.TreePop()
		}
		return
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		if ref, ok := v.Interface().(*ecs.EntityRef); ok {
			imgui.Text(fmt.Sprintf("%s: entity %d (valid %t)", name, ref.Id, ref.Valid()))
			return
		}
		imgui.Text(fmt.Sprintf("%s: %s", name, v.Type()))
		return
	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %d items", name, v.Len()))
		return
	case reflect.Func:
		imgui.Text(name + ": func")
		return
	}

	imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
}
