/*
Package definition builds stores from declarative YAML documents.

	name: todo
	state:
	  todos: []
	  filter:
	    done: false
	mutations:
	  add:
	    op: append
	    field: todos
	    from: title
	    accepts: {title: string}
	  toggleDone:
	    op: toggle
	    field: filter.done
	getters:
	  count: {op: len, field: todos}
	  hasAny: {op: gt, getter: count, value: 0}
	actions:
	  addLater:
	    steps:
	      - commit: add
	        delay: 50ms

Mutations support the ops set, add, append and toggle. Getters support get,
len, not, eq, gt, lt, sum and getter. An action whose steps carry a delay runs
asynchronously.
*/
package definition
