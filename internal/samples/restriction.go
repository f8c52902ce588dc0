package samples

import (
	"github.com/paveg/linq/internal/columnar"
	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/query"
)

// dump enumerates s and writes every element.
func dump[T any](env *Env, s query.Sequence[T]) {
	for v := range prepare(env, s).All() {
		env.Out.Write(v)
	}
}

func numbersBelowFive(env *Env) error {
	numbers := columnar.NewColumn("numbers", []int64{5, 4, 1, 3, 9, 8, 6, 7, 2, 0}, nil)
	defer numbers.Release()

	low := numbers.Sequence().Where(func(n int64) bool { return n < 5 })

	env.Out.Line("Numbers < 5:")
	dump(env, low)
	return nil
}

func productsInStock(env *Env) error {
	dump(env, query.From(env.Data.Products).Where(dataset.Product.InStock))
	return nil
}
