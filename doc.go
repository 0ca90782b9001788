// Package gopaginate provides page/offset pagination metadata over any data
// source that can count and find documents.
//
// Overview
//
// A Paginator wraps a Source (count + find). Each Paginate call counts the
// documents matching a Filter and fetches the requested page concurrently,
// then derives:
//   - totalDocs, limit, page, totalPages;
//   - pagingCounter: 1-based position of the first document of the page;
//   - prevPage/nextPage and hasPrevPage/hasNextPage navigation;
//   - offset, when the page was addressed by offset.
//
// Key concepts
//   - Options: limit, page or offset, pagination switch, query shaping
//     (select, sort, populate...) and custom labels for the output keys.
//   - RawOptions: loosely typed options from JSON bodies or query strings.
//   - Result: typed outcome rendering itself with the resolved labels.
//   - GORMSource and pgxsource.Source: ready-made sources.
//
// Example
//
//	res, err := gopaginate.NewPaginator[User](gopaginate.NewGORMSource[User](db)).
//		Paginate(ctx, gopaginate.Filter{"city": "Paris"},
//			gopaginate.NewOptions().WithLimit(20).WithPage(2))
package gopaginate
