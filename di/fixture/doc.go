// Package fixture decorates a di.Container with random test-data synthesis.
//
// A Fixture resolves any type the container can build, and fills in everything
// the container cannot: primitives, strings, UUIDs, timestamps, decimals,
// slices, arrays, maps and records with exported fields. Interfaces still need
// a registration (or a frozen instance).
//
//	f := fixture.New(fixture.WithSeed(42))
//	di.MustRegister[sales.ProductDatabase, *sales.InventoryDatabase](f.Container)
//
//	sale := fixture.MustCreate[sales.Sale](f)
//	customers, err := fixture.CreateMany[sales.Customer](f, 7)
//
// Freeze pins an instance so every later resolution of its type, including
// resolutions nested inside other objects, returns it:
//
//	stub := fixture.Freeze[sales.ProductDatabase](f, alwaysInStock{})
//
// Randomness comes from one ChaCha8 stream per fixture; WithSeed makes the
// generated data reproducible.
package fixture
