package ast

import "github.com/accc-project/accc/internal/astarena"

// Arena owns every AST node allocated for one translation unit,
// mirroring the identifier table's arena-backed storage. One astarena.Nodes[T] pool per node
// type keeps nodes of the same kind contiguous, the same pattern
// internal/ident.Table uses for Handle.
type Arena struct {
	typeSpecifiers *astarena.Nodes[TypeSpecifier]
	arraySpecifiers *astarena.Nodes[ArraySpecifier]
	parameters *astarena.Nodes[Parameter]
	parameterLists *astarena.Nodes[Parameters]
	declarators *astarena.Nodes[Declarator]
	declarations *astarena.Nodes[Declaration]
	blocks *astarena.Nodes[Block]
	returns *astarena.Nodes[Return]
	emptyStatements *astarena.Nodes[EmptyStatement]
	ifs *astarena.Nodes[If]
	topLevels *astarena.Nodes[TopLevel]
	unaries *astarena.Nodes[Unary]
	binaries *astarena.Nodes[Binary]
	literals *astarena.Nodes[Literal]
	identifiers *astarena.Nodes[Identifier]
}

// NewArena creates an empty AST arena.
func NewArena() *Arena {
	return &Arena{
		typeSpecifiers: astarena.NewNodes[TypeSpecifier](),
		arraySpecifiers: astarena.NewNodes[ArraySpecifier](),
		parameters: astarena.NewNodes[Parameter](),
		parameterLists: astarena.NewNodes[Parameters](),
		declarators: astarena.NewNodes[Declarator](),
		declarations: astarena.NewNodes[Declaration](),
		blocks: astarena.NewNodes[Block](),
		returns: astarena.NewNodes[Return](),
		emptyStatements: astarena.NewNodes[EmptyStatement](),
		ifs: astarena.NewNodes[If](),
		topLevels: astarena.NewNodes[TopLevel](),
		unaries: astarena.NewNodes[Unary](),
		binaries: astarena.NewNodes[Binary](),
		literals: astarena.NewNodes[Literal](),
		identifiers: astarena.NewNodes[Identifier](),
	}
}

func (a *Arena) NewTypeSpecifier() *TypeSpecifier { return a.typeSpecifiers.New() }
func (a *Arena) NewArraySpecifier() *ArraySpecifier { return a.arraySpecifiers.New() }
func (a *Arena) NewParameter() *Parameter { return a.parameters.New() }
func (a *Arena) NewParameters() *Parameters { return a.parameterLists.New() }
func (a *Arena) NewDeclarator() *Declarator { return a.declarators.New() }
func (a *Arena) NewDeclaration() *Declaration { return a.declarations.New() }
func (a *Arena) NewBlock() *Block { return a.blocks.New() }
func (a *Arena) NewReturn() *Return { return a.returns.New() }
func (a *Arena) NewEmptyStatement() *EmptyStatement { return a.emptyStatements.New() }
func (a *Arena) NewIf() *If { return a.ifs.New() }
func (a *Arena) NewTopLevel() *TopLevel { return a.topLevels.New() }
func (a *Arena) NewUnary() *Unary { return a.unaries.New() }
func (a *Arena) NewBinary() *Binary { return a.binaries.New() }
func (a *Arena) NewLiteral() *Literal { return a.literals.New() }
func (a *Arena) NewIdentifier() *Identifier { return a.identifiers.New() }
