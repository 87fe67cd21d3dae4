package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperjump/notegraph/internal/models"
)

// DemoNotes returns the five sample notes used by the demo variant, owned by userID.
// Ids are "1" through "5". The sample links are not all mutual.
func DemoNotes(userID string) []*models.Note {
	now := time.Now()
	mk := func(i int, id, title, folder string, status models.Status, tags, links []string, content string) *models.Note {
		ts := now.Add(-time.Duration(i) * time.Second)
		return &models.Note{
			ID:        id,
			UserID:    userID,
			Title:     title,
			Content:   content,
			Folder:    folder,
			Status:    status,
			Tags:      tags,
			Links:     links,
			CreatedAt: ts,
			UpdatedAt: ts,
		}
	}
	return []*models.Note{
		mk(0, "1", "Arrays", "Arrays", models.StatusInProgress,
			[]string{"data-structure", "fundamental"}, []string{"2", "3"},
			"# Arrays\n\n## Overview\nArrays are fundamental data structures that store elements in contiguous memory locations.\n\n"+
				"## Key Operations\n- Access: O(1)\n- Search: O(n)\n- Insertion: O(n)\n- Deletion: O(n)\n\n"+
				"## Common Patterns\n- Two pointers\n- Sliding window\n- Prefix sums\n\n"+
				"## Important Algorithms\n- Sorting algorithms\n- Binary search\n- Kadane's algorithm"),
		mk(1, "2", "Strings", "Strings", models.StatusToRevisit,
			[]string{"data-structure", "text-processing"}, []string{"1"},
			"# Strings\n\n## Overview\nStrings are sequences of characters, often implemented as arrays of characters.\n\n"+
				"## Key Operations\n- Concatenation\n- Substring extraction\n- Pattern matching\n- Case conversion\n\n"+
				"## Common Algorithms\n- String matching (KMP, Rabin-Karp)\n- Palindrome checking\n- Anagram detection\n- Longest common subsequence"),
		mk(2, "3", "Linked Lists", "Linked Lists", models.StatusMastered,
			[]string{"data-structure", "pointers"}, []string{"4"},
			"# Linked Lists\n\n## Overview\nDynamic data structure where elements are stored in nodes, each containing data and a reference to the next node.\n\n"+
				"## Types\n- Singly linked list\n- Doubly linked list\n- Circular linked list\n\n"+
				"## Key Operations\n- Insertion: O(1) at head, O(n) at arbitrary position\n- Deletion: O(1) if node is given, O(n) to find and delete\n- Search: O(n)\n\n"+
				"## Common Problems\n- Reverse linked list\n- Detect cycle\n- Merge sorted lists"),
		mk(3, "4", "Recursion & Backtracking", "Recursion", models.StatusInProgress,
			[]string{"algorithm", "problem-solving"}, []string{"3", "5"},
			"# Recursion & Backtracking\n\n## Recursion\nA function that calls itself with a smaller subproblem.\n\n"+
				"### Key Components\n- Base case\n- Recursive case\n- Stack space consideration\n\n"+
				"## Backtracking\nSystematic way to iterate through all possible solutions.\n\n"+
				"### Pattern\n1. Choose\n2. Explore\n3. Unchoose (backtrack)\n\n"+
				"## Common Applications\n- Tree traversal\n- Permutations and combinations\n- N-Queens problem\n- Sudoku solver"),
		mk(4, "5", "Stack and Queue", "Stacks & Queues", models.StatusToRevisit,
			[]string{"data-structure", "fundamental"}, []string{"4"},
			"# Stack and Queue\n\n## Stack (LIFO - Last In, First Out)\n### Operations\n- Push: O(1)\n- Pop: O(1)\n- Peek/Top: O(1)\n\n"+
				"### Applications\n- Function call management\n- Expression evaluation\n- Undo operations\n- Browser history\n\n"+
				"## Queue (FIFO - First In, First Out)\n### Operations\n- Enqueue: O(1)\n- Dequeue: O(1)\n- Front: O(1)\n\n"+
				"### Applications\n- BFS traversal\n- Process scheduling\n- Handling requests"),
	}
}

// SeedDemo inserts the demo notes for userID unless the user already has notes.
func SeedDemo(ctx context.Context, s Storage, userID string) error {
	existing, err := s.ListNotes(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, n := range DemoNotes(userID) {
		if err := s.CreateNote(ctx, n); err != nil {
			return fmt.Errorf("failed to seed note %s: %w", n.ID, err)
		}
	}
	return nil
}
