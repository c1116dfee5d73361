package rag

import "github.com/Vrindavan30/college-counselor-go/internal/kb"

// ItemsFromKB flattens every knowledge base record into one index item.
// Item indices are positions in the KB slices, so results map straight
// back to the source records for the lifetime of a load.
func ItemsFromKB(k *kb.KB) []Item {
	if k == nil {
		return nil
	}

	items := make([]Item, 0,
		len(k.Deadlines)+len(k.Professors)+len(k.Courses)+len(k.FAQ)+len(k.Majors))

	for i := range k.Deadlines {
		items = append(items, Item{Kind: KindDeadline, Index: i, Content: k.Deadlines[i].SearchText()})
	}
	for i := range k.Professors {
		items = append(items, Item{Kind: KindProfessor, Index: i, Content: k.Professors[i].SearchText()})
	}
	for i := range k.Courses {
		items = append(items, Item{Kind: KindCourse, Index: i, Content: k.Courses[i].SearchText()})
	}
	for i := range k.FAQ {
		items = append(items, Item{Kind: KindFAQ, Index: i, Content: k.FAQ[i].SearchText()})
	}
	for i := range k.Majors {
		items = append(items, Item{Kind: KindMajor, Index: i, Content: k.Majors[i].SearchText()})
	}

	return items
}
