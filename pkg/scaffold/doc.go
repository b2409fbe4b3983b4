/*
Package scaffold is the entry point for copying a template directory.

	+-----------+     +-----------+     +-------------+
	|  Request  | --> |  Resolver | --> |   Copier    |
	+-----------+     +-----------+     +------+------+
	                   one prompt at most      |
	                                     event.Bus listeners

🎯 Purpose:
- Hold one template's configuration (root, placeholders, options)
- Resolve placeholder values, prompting once for whatever is missing
- Copy the template and report progress through lifecycle events
- Classify failures with KindOf

🔄 Two ways to run:

	// blocking
	result, err := s.Copy(ctx, scaffold.Request{Destination: "out"})

	// background, with a completion callback
	task := s.Start(ctx, scaffold.Request{Destination: "out"}).
		OnDone(func(r scaffold.Result, err error) { ... })
	result, err := task.Wait(ctx)

📣 Events:
Listeners are registered with On and OnAny and always run one at a time.
Every run ends with exactly one event.Complete or event.Error.
*/
package scaffold
