package view

import (
	"bytes"
	"fmt"
	"html/template"
)

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"price": FormatPrice,
	"stars": StarsHTML,
}).Parse(`
{{define "card"}}<div class="pro">
  <a class="pro-link" href="/product?id={{.ID}}">
    <img src="{{.Image}}" alt="{{.Name}}">
    <div class="des">
      <span>{{.Category}}</span>
      <h5>{{.Name}}</h5>
      <div class="star">{{stars .Rating}}</div>
      <h4>{{price .Price}}</h4>
    </div>
  </a>
  <form class="add-to-cart" method="post" action="/cart/add/{{.ID}}">
    <button type="submit" class="cart" aria-label="Add {{.Name}} to cart"><i class="fal fa-shopping-cart"></i></button>
  </form>
</div>
{{end}}

{{define "cart-row"}}<tr>
  <td>
    <form method="post" action="/cart/remove/{{.ProductID}}">
      <button type="submit" class="remove" aria-label="Remove {{.Name}}"><i class="far fa-times-circle"></i></button>
    </form>
  </td>
  <td><img src="{{.Image}}" alt="{{.Name}}"></td>
  <td>{{.Name}}</td>
  <td>{{price .Price}}</td>
  <td>
    <form method="post" action="/cart/quantity/{{.ProductID}}">
      <input type="hidden" name="prev" value="{{.Quantity}}">
      <input type="number" name="quantity" value="{{.Quantity}}" min="0" onchange="this.form.submit()">
    </form>
  </td>
  <td>{{price .Total}}</td>
</tr>
{{end}}

{{define "cart-empty"}}<tr><td colspan="6" class="empty">Your cart is empty.</td></tr>
{{end}}

{{define "category-filter"}}<a href="/shop"{{if eq .Active ""}} class="active"{{end}}>All</a>
{{range .Categories}}<a href="/shop?category={{.}}"{{if eq . $.Active}} class="active"{{end}}>{{.}}</a>
{{end}}{{end}}
`))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
