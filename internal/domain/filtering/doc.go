// Package filtering calcula la lista visible de proveedores del directorio.
//
// Un proveedor es visible si pasa los dos criterios (AND lógico):
//
//   - Nombre: contiene la consulta como subcadena, sin distinguir mayúsculas
//     (plegado Unicode, así "CHÊNES" encuentra "Chênes"). Consulta vacía = todos.
//   - Categorías: sin categorías seleccionadas = todos; si hay selección, basta
//     con que una categoría del proveedor esté seleccionada (OR entre categorías).
//
// Ids de categoría desconocidos nunca coinciden con nada; no son un error.
// Filter es una función pura: no modifica sus entradas y conserva el orden.
package filtering
