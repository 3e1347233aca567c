package executor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/executor"
	"github.com/quill-lang/quill/internal/gc"
	"github.com/quill-lang/quill/internal/parser"
)

// mustRun parses and runs src against a fresh Executor, failing the test
// on a lex/parse error or an uncaught throw, the same fixture-driven
// shape the teacher's internal/interp/fixture_test.go runs scripts with.
func mustRun(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(src)
	prog, errs := p.Parse()
	require.Empty(t, errs, "unexpected parse errors for %q", src)
	require.Empty(t, p.LexErrors(), "unexpected lex errors for %q", src)

	exec := executor.New(gc.NewHeap())
	result, thrown := exec.Run(prog)
	require.Nil(t, thrown, "unexpected throw for %q: %v", src, thrown)
	return result.ToStringSimple()
}

func TestArithmeticOperatorPrecedence(t *testing.T) {
	require.Equal(t, "7", mustRun(t, "1 + 2 * 3"))
	require.Equal(t, "9", mustRun(t, "(1 + 2) * 3"))
	require.Equal(t, "0", mustRun(t, "7 % 3 - 1"))
	require.Equal(t, "8", mustRun(t, "2 ** 3"))
}

func TestLogicalAndNullishOperators(t *testing.T) {
	require.Equal(t, "2", mustRun(t, "0 || 2"))
	require.Equal(t, "0", mustRun(t, "0 ?? 2"))
	require.Equal(t, "undefined", mustRun(t, "null?.x"))
	require.Equal(t, "2", mustRun(t, "1 && 2"))
}

func TestStrictVsLooseEquality(t *testing.T) {
	require.Equal(t, "true", mustRun(t, "1 == '1'"))
	require.Equal(t, "false", mustRun(t, "1 === '1'"))
	require.Equal(t, "true", mustRun(t, "null == undefined"))
	require.Equal(t, "false", mustRun(t, "null === undefined"))
}

func TestIfWhileForControlFlow(t *testing.T) {
	require.Equal(t, "yes", mustRun(t, `let r; if (1 < 2) { r = "yes"; } else { r = "no"; } r`))

	require.Equal(t, "10", mustRun(t, `
		let sum = 0, i = 0;
		while (i < 5) { sum += i; i++; }
		sum
	`))

	require.Equal(t, "10", mustRun(t, `
		let sum = 0;
		for (let i = 0; i < 5; i++) { sum += i; }
		sum
	`))
}

func TestForOfAndForInIteration(t *testing.T) {
	require.Equal(t, "6", mustRun(t, `
		let sum = 0;
		for (const x of [1, 2, 3]) { sum += x; }
		sum
	`))

	require.Equal(t, "a,b", mustRun(t, `
		let keys = [];
		for (const k in {a: 1, b: 2}) { keys.push(k); }
		keys.join(',')
	`))
}

func TestSwitchStatementFallthroughAndDefault(t *testing.T) {
	require.Equal(t, "two-or-three", mustRun(t, `
		function classify(n) {
			switch (n) {
				case 2:
				case 3:
					return "two-or-three";
				default:
					return "other";
			}
		}
		classify(3)
	`))
}

func TestLabelledBreakEscapesOuterLoop(t *testing.T) {
	require.Equal(t, "0,0 0,1 0,2 1,0", mustRun(t, `
		let hits = [];
		outer: for (let i = 0; i < 3; i++) {
			for (let j = 0; j < 3; j++) {
				if (i === 1 && j === 1) break outer;
				hits.push(i + "," + j);
			}
		}
		hits.join(' ')
	`))
}

func TestTryCatchFinallyCompletion(t *testing.T) {
	require.Equal(t, "caught:boom", mustRun(t, `
		let r;
		try {
			throw new Error("boom");
		} catch (e) {
			r = "caught:" + e.message;
		} finally {
			r += "";
		}
		r
	`))

	require.Equal(t, "1", mustRun(t, `
		let order = [];
		function f() {
			try {
				return 0;
			} finally {
				order.push(1);
			}
		}
		f();
		order.join('')
	`))
}

func TestClosuresCaptureEnclosingBindings(t *testing.T) {
	require.Equal(t, "1,2,3", mustRun(t, `
		function makeCounter() {
			let n = 0;
			return function() { n++; return n; };
		}
		let c = makeCounter();
		c() + "," + c() + "," + c()
	`))
}

func TestDefaultAndRestParameters(t *testing.T) {
	require.Equal(t, "5", mustRun(t, `
		function add(a, b = 2) { return a + b; }
		add(3)
	`))

	require.Equal(t, "6", mustRun(t, `
		function sum(...xs) { return xs.reduce((a, b) => a + b, 0); }
		sum(1, 2, 3)
	`))
}

func TestArrowFunctionLexicalThis(t *testing.T) {
	require.Equal(t, "42", mustRun(t, `
		function Thing() {
			this.value = 42;
			this.get = () => this.value;
		}
		let t = new Thing();
		t.get()
	`))
}

func TestClassInheritanceAndSuper(t *testing.T) {
	require.Equal(t, "Rex barks and growls", mustRun(t, `
		class Animal {
			constructor(name) { this.name = name; }
			speak() { return this.name + " barks"; }
		}
		class Dog extends Animal {
			speak() { return super.speak() + " and growls"; }
		}
		new Dog("Rex").speak()
	`))
}

func TestClassStaticMembersAndFields(t *testing.T) {
	require.Equal(t, "1,2", mustRun(t, `
		class Counter {
			static count = 0;
			id = ++Counter.count;
		}
		let a = new Counter();
		let b = new Counter();
		a.id + "," + b.id
	`))
}

func TestDestructuringAssignmentAndDefaults(t *testing.T) {
	require.Equal(t, "1,2,3", mustRun(t, `
		let {a, b = 2, ...rest} = {a: 1, c: 3};
		a + "," + b + "," + rest.c
	`))

	require.Equal(t, "1,2", mustRun(t, `
		let [x, y] = [1, 2];
		x + "," + y
	`))
}
