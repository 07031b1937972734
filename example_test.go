package splitz

import (
	"context"
	"fmt"
	"sync"
)

func ExampleNewSplit() {
	ctx := context.Background()

	out := NewSplit[int](func(n int) bool { return n%2 == 0 }).
		Split(FromSlice(0, 1, 2, 3, 4, 5))

	var evens, odds []int
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		evens, _ = Collect(ctx, out.True)
	}()
	go func() {
		defer wg.Done()
		odds, _ = Collect(ctx, out.False)
	}()
	wg.Wait()

	fmt.Println("evens:", evens)
	fmt.Println("odds:", odds)
	// Output:
	// evens: [0 2 4]
	// odds: [1 3 5]
}

func ExampleNewSplitMap() {
	ctx := context.Background()

	type request struct{ path string }
	type response struct{ status int }
	type message struct {
		req *request
		res *response
	}

	out := NewSplitMap(func(m message) Either[request, response] {
		if m.req != nil {
			return Left[request, response](*m.req)
		}
		return Right[request, response](*m.res)
	}).Split(FromSlice(
		message{req: &request{path: "/health"}},
		message{res: &response{status: 200}},
		message{res: &response{status: 503}},
	))

	var requests []request
	var responses []response
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		requests, _ = Collect(ctx, out.Left)
	}()
	go func() {
		defer wg.Done()
		responses, _ = Collect(ctx, out.Right)
	}()
	wg.Wait()

	fmt.Println("requests:", len(requests))
	fmt.Println("responses:", len(responses))
	// Output:
	// requests: 1
	// responses: 2
}
